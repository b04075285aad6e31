package salesmanago

import (
	"crypto/sha1"
	"encoding/hex"
	"reflect"
)

// AuthEnvelope holds the authentication fields sent with every request.
type AuthEnvelope struct {
	ClientID    string `json:"clientId"`
	APIKey      string `json:"apiKey"`
	RequestTime int64  `json:"requestTime"`
	Sha         string `json:"sha"`
}

// Signature returns the hex SHA-1 of apiKey + clientID + apiSecret, the
// proof of secret possession the API expects in the "sha" field.
func Signature(apiKey, clientID, apiSecret string) string {
	sum := sha1.Sum([]byte(apiKey + clientID + apiSecret))
	return hex.EncodeToString(sum[:])
}

func (c *Client) createAuthData() AuthEnvelope {
	return AuthEnvelope{
		ClientID:    c.config.ClientID,
		APIKey:      c.config.APIKey,
		RequestTime: c.now().Unix(),
		Sha:         Signature(c.config.APIKey, c.config.ClientID, c.config.APISecret),
	}
}

func (e AuthEnvelope) toData() Data {
	return Data{
		"clientId":    e.ClientID,
		"apiKey":      e.APIKey,
		"requestTime": e.RequestTime,
		"sha":         e.Sha,
	}
}

// mergeData overlays replacements on base and drops nil values, including
// typed nil pointers, maps, slices and interfaces. Neither input is modified.
func mergeData(base, replacements Data) Data {
	merged := make(Data, len(base)+len(replacements))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range replacements {
		merged[k] = v
	}
	for k, v := range merged {
		if isNil(v) {
			delete(merged, k)
		}
	}
	return merged
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

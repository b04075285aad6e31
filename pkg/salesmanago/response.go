package salesmanago

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

type responseKind int

const (
	responseSuccess responseKind = iota
	responseParseFailure
	responseNotObject
	responseMissingSuccess
	responseUnsuccessful
)

var errTrailingData = errors.New("invalid data after top-level JSON value")

func (k responseKind) String() string {
	switch k {
	case responseSuccess:
		return "success"
	case responseParseFailure:
		return "response is not valid JSON"
	case responseNotObject:
		return "response is not a JSON object"
	case responseMissingSuccess:
		return "response has no success field"
	case responseUnsuccessful:
		return "response success field is false"
	default:
		return "unknown"
	}
}

// classifyResponse decodes body and reports which outcome it represents.
// The decoded object is only returned for responseSuccess. Numbers are kept
// as json.Number so large integer IDs survive unchanged.
func classifyResponse(body []byte) (Response, responseKind, error) {
	decoded, err := decodeJSON(body)
	if err != nil {
		return nil, responseParseFailure, err
	}

	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, responseNotObject, nil
	}

	success, ok := obj["success"]
	if !ok {
		return nil, responseMissingSuccess, nil
	}
	if !truthy(success) {
		return nil, responseUnsuccessful, nil
	}

	return Response(obj), responseSuccess, nil
}

func decodeJSON(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}
	return decoded, nil
}

// truthy follows loose boolean conversion of a decoded JSON value:
// false, null, 0, 0.0, "", "0" and [] are false.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case string:
		return t != "" && t != "0"
	case []interface{}:
		return len(t) > 0
	default:
		return true
	}
}

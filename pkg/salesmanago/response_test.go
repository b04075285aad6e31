package salesmanago

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		body string
		want responseKind
	}{
		{`{"success":true,"foo":"bar"}`, responseSuccess},
		{`{"success":1}`, responseSuccess},
		{`{"success":"yes"}`, responseSuccess},
		{`{"success":{}}`, responseSuccess},
		{`{"success":false}`, responseUnsuccessful},
		{`{"success":0}`, responseUnsuccessful},
		{`{"success":0.0}`, responseUnsuccessful},
		{`{"success":0.5}`, responseSuccess},
		{`{"success":""}`, responseUnsuccessful},
		{`{"success":"0"}`, responseUnsuccessful},
		{`{"success":[]}`, responseUnsuccessful},
		{`{"foo":"bar"}`, responseMissingSuccess},
		{`"success"`, responseNotObject},
		{`null`, responseNotObject},
		{`{"success":true`, responseParseFailure},
		{`{"success":true} x`, responseParseFailure},
		{``, responseParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			resp, kind, err := classifyResponse([]byte(tt.body))
			assert.Equal(t, tt.want, kind)
			if tt.want == responseSuccess {
				assert.NotNil(t, resp)
			} else {
				assert.Nil(t, resp)
			}
			assert.Equal(t, tt.want == responseParseFailure, err != nil)
		})
	}
}

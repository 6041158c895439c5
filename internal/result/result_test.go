package result

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestEnvelopeShape(t *testing.T) {
	ok := OK(http.StatusOK, map[string]string{"k": "v"})
	if !ok.IsSuccess || ok.HTTPStatusCode != http.StatusOK || ok.Error != nil {
		t.Errorf("OK envelope: %+v", ok)
	}

	fail := Fail[any](http.StatusBadRequest, InvalidOTP)
	if fail.IsSuccess || fail.Error == nil || fail.Error.Code != "InvalidOTP" {
		t.Errorf("Fail envelope: %+v", fail)
	}

	internal := Internal[any]()
	if internal.HTTPStatusCode != http.StatusInternalServerError || internal.Error.Code != "SomethingWentWrong" {
		t.Errorf("Internal envelope: %+v", internal)
	}
}

func TestEnvelopeJSON(t *testing.T) {
	raw, err := json.Marshal(Fail[any](http.StatusBadRequest, ExpiredOTP))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		IsSuccess      bool `json:"isSuccess"`
		HTTPStatusCode int  `json:"httpStatusCode"`
		Error          *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Data any `json:"data"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.IsSuccess || decoded.HTTPStatusCode != 400 || decoded.Error == nil || decoded.Error.Code != "ExpiredOTP" {
		t.Errorf("decoded %+v from %s", decoded, raw)
	}
	if decoded.Data != nil {
		t.Errorf("data = %v, want null", decoded.Data)
	}
}

package google

import (
	"errors"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestClassifyTypedError(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{403, 403},
		{404, 404},
		{401, 401},
		{429, 429},
	}
	for _, tc := range cases {
		apiErr := Classify(&googleapi.Error{Code: tc.code, Message: "boom"})
		if apiErr.Status != tc.want {
			t.Fatalf("code %d: got status %d", tc.code, apiErr.Status)
		}
	}
}

func TestClassifyBySubstring(t *testing.T) {
	cases := []struct {
		msg  string
		want int
	}{
		{"The caller does not have permission", 403},
		{"Requested entity was not found", 404},
		{"invalid_grant: token expired", 401},
		{"Quota exceeded for read requests", 429},
		{"connection reset by peer", 500},
	}
	for _, tc := range cases {
		apiErr := Classify(errors.New(tc.msg))
		if apiErr.Status != tc.want {
			t.Fatalf("%q: got status %d want %d", tc.msg, apiErr.Status, tc.want)
		}
	}
}

func TestClassifyUnwraps(t *testing.T) {
	cause := errors.New("underlying")
	if !errors.Is(Classify(cause), cause) {
		t.Fatal("classified error must wrap the cause")
	}
}

package fundgz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etnz/fundwatch"
)

func TestParse(t *testing.T) {
	data := []byte(`jsonpgz({"fundcode":"001186","name":"富国文体健康股票A","jzrq":"2024-05-10","dwjz":"3.6305","gsz":"3.6512","gszzl":"0.57","gztime":"2024-05-13 15:00"});`)
	v, err := parse("001186", data)
	if err != nil {
		t.Fatalf("parse() unexpected error = %v", err)
	}
	want := fundwatch.Valuation{
		Code:           "001186",
		Name:           "富国文体健康股票A",
		ReferenceDate:  "2024-05-10",
		ReferencePrice: "3.6305",
		Estimate:       "3.6512",
		EstimateChange: "0.57",
		EstimatedAt:    "2024-05-13 15:00",
	}
	if v != want {
		t.Errorf("parse() = %+v, want %+v", v, want)
	}
	if _, err := v.Reference(); err != nil {
		t.Errorf("Reference() unexpected error = %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		notFound bool
	}{
		{"empty call", "jsonpgz();", true},
		{"blank call", "jsonpgz(  );\n", true},
		{"html error page", "<html>502 Bad Gateway</html>", false},
		{"broken json", `jsonpgz({"fundcode":"001186",);`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse("001186", []byte(tc.data))
			if err == nil {
				t.Fatal("parse() expected an error")
			}
			if got := errors.Is(err, ErrNotFound); got != tc.notFound {
				t.Errorf("errors.Is(%v, ErrNotFound) = %v, want %v", err, got, tc.notFound)
			}
		})
	}
}

func TestClient_Valuation(t *testing.T) {
	var gotPath, gotRT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotRT = r.URL.Path, r.URL.Query().Get("rt")
		if r.URL.Path != "/js/001186.js" {
			w.Write([]byte("jsonpgz();"))
			return
		}
		w.Write([]byte(`jsonpgz({"fundcode":"001186","name":"A","jzrq":"2024-05-10","dwjz":"3.6305","gsz":"3.6512","gszzl":"0.57","gztime":"2024-05-13 15:00"});`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/js/", now: func() time.Time { return time.UnixMilli(1715580000000) }}
	v, err := c.Valuation(context.Background(), "001186")
	if err != nil {
		t.Fatalf("Valuation() unexpected error = %v", err)
	}
	if v.ReferencePrice != "3.6305" || v.Name != "A" {
		t.Errorf("Valuation() = %+v", v)
	}
	if gotPath != "/js/001186.js" || gotRT != "1715580000000" {
		t.Errorf("Valuation() requested %s?rt=%s", gotPath, gotRT)
	}

	if _, err := c.Valuation(context.Background(), "002145"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Valuation() of unknown fund error = %v, want ErrNotFound", err)
	}
	if _, err := c.Valuation(context.Background(), "12"); err == nil {
		t.Error("Valuation() of an invalid code should fail")
	}
}

package eastmoney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/fundwatch"
	"github.com/rs/zerolog"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []fundwatch.SearchResult
	}{
		{
			name: "funds",
			data: `{"ErrCode":0,"Datas":[{"CODE":"001186","NAME":"富国文体健康股票A","CATEGORYDESC":"基金"},{"CODE":"001187","NAME":"富国文体健康股票C","CATEGORYDESC":"基金"}]}`,
			want: []fundwatch.SearchResult{
				{Code: "001186", Name: "富国文体健康股票A", Category: "基金"},
				{Code: "001187", Name: "富国文体健康股票C", Category: "基金"},
			},
		},
		{
			name: "non fund hits are ignored",
			data: `{"Datas":[{"CODE":"80000228","NAME":"富国基金","CATEGORYDESC":"基金公司"},{"CODE":"110011","NAME":"B"}]}`,
			want: []fundwatch.SearchResult{{Code: "110011", Name: "B"}},
		},
		{name: "no Datas", data: `{"ErrCode":0}`},
		{name: "null Datas", data: `{"Datas":null}`},
		{name: "empty Datas", data: `{"Datas":[]}`, want: []fundwatch.SearchResult{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parse([]byte(tc.data))
			if err != nil {
				t.Fatalf("parse() unexpected error = %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("parse() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("parse()[%d] = %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}

	if _, err := parse([]byte("<html>")); err == nil {
		t.Error("parse() of a non json body should fail")
	}
}

func TestClient_Search(t *testing.T) {
	var gotKey string
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"Datas":[{"CODE":"001186","NAME":"富国文体健康股票A","CATEGORYDESC":"基金"}]}`))
	}))
	defer srv.Close()

	c := New(t.TempDir(), zerolog.Nop())
	c.BaseURL = srv.URL + "/api"
	for range 2 {
		got, err := c.Search(context.Background(), "富国 文体")
		if err != nil {
			t.Fatalf("Search() unexpected error = %v", err)
		}
		if len(got) != 1 || got[0].Code != "001186" {
			t.Errorf("Search() = %v", got)
		}
	}
	if gotKey != "富国 文体" {
		t.Errorf("Search() sent key %q", gotKey)
	}
	if calls != 1 {
		t.Errorf("Search() hit the service %d times, want 1 (cached)", calls)
	}
}

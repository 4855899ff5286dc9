package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 20, 0},
		{"explicit", "?page=3&limit=10", 3, 10, 20},
		{"zero page falls back", "?page=0", 1, 20, 0},
		{"negative page falls back", "?page=-5", 1, 20, 0},
		{"limit capped", "?limit=500", 1, 100, 0},
		{"limit below minimum falls back", "?limit=0", 1, 20, 0},
		{"non-numeric input falls back", "?page=abc&limit=xyz", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paramsFor(t, tt.query)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("Parse(%q) = %+v, want page=%d limit=%d offset=%d",
					tt.query, got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

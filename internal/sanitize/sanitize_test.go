package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "오늘은 좋은 하루였다", "오늘은 좋은 하루였다"},
		{"script block removed", `before<script>alert(1)</script>after`, "beforeafter"},
		{"script block case insensitive", `<SCRIPT src="x">hi</SCRIPT>ok`, "ok"},
		{"dangling script tag removed", `<script>no close`, "no close"},
		{"javascript uri removed", `<a href="javascript:alert(1)">x</a>`, `<a href="alert(1)">x</a>`},
		{"onclick attribute removed", `<div onclick="steal()">x</div>`, `<div>x</div>`},
		{"onerror unquoted removed", `<img src=x onerror=alert(1)>`, `<img src=x>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

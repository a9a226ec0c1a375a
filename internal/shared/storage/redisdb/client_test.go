package redisdb

import (
	"context"
	"testing"
)

func TestConnectRejectsBadURL(t *testing.T) {
	if _, err := Connect(context.Background(), "http://not-redis"); err == nil {
		t.Fatalf("expected parse error for non-redis scheme")
	}
}

package userctx

import (
	"context"
	"testing"
)

func TestOwnerUserID(t *testing.T) {
	if got := OwnerUserID(context.Background()); got != DefaultUserID {
		t.Errorf("expected %q, got %q", DefaultUserID, got)
	}

	ctx := WithUserID(context.Background(), "email:ana@example.com")
	if got := OwnerUserID(ctx); got != "email:ana@example.com" {
		t.Errorf("expected authenticated user, got %q", got)
	}

	if _, ok := GetUserID(WithUserID(context.Background(), "")); ok {
		t.Error("empty user id must not count as authenticated")
	}
}

package repositories

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/Rohan-debug788/SkillSwap/internal/config"
	"github.com/Rohan-debug788/SkillSwap/internal/repositories/memstore"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "Nil", err: nil, wantCode: ""},
		{name: "Record not found", err: gorm.ErrRecordNotFound, wantCode: errors.ErrCodeNotFound},
		{name: "Wrapped not found", err: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), wantCode: errors.ErrCodeNotFound},
		{name: "Duplicate key", err: gorm.ErrDuplicatedKey, wantCode: errors.ErrCodeInvalidState},
		{name: "Invalid data", err: gorm.ErrInvalidData, wantCode: errors.ErrCodeValidation},
		{name: "Deadline", err: context.DeadlineExceeded, wantCode: errors.ErrCodeTransientStore},
		{name: "Connection refused", err: stderrors.New("dial tcp: connection refused"), wantCode: errors.ErrCodeTransientStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, "thing not found", "failed")
			if tt.err == nil {
				if got != nil {
					t.Fatalf("translate(nil) = %v, want nil", got)
				}
				return
			}
			if code := errors.CodeOf(got); code != tt.wantCode {
				t.Errorf("translate() code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestOpenMemory(t *testing.T) {
	store, closeFn, err := Open(&config.Config{StoreDriver: config.StoreDriverMemory})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer closeFn()

	if _, ok := store.(*memstore.Store); !ok {
		t.Errorf("Open() returned %T, want *memstore.Store", store)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, _, err := Open(&config.Config{StoreDriver: "sqlite"}); err == nil {
		t.Error("Open() expected error for unknown driver")
	}
}

package usecase

import (
	"log/slog"
	"strconv"
	"time"

	"blog/internal/testutil"
	"blog/utils/validator"
)

var testLogger = slog.Default()

func newStore() *testutil.Store {
	return testutil.NewStore()
}

func newValidator() *validator.Validator {
	return validator.New()
}

func ptr(t time.Time) *time.Time {
	return &t
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

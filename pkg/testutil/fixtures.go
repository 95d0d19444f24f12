package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers and clock for deterministic tests.
var (
	TestUserID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestUserID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestNow     = time.Date(2026, time.March, 2, 15, 4, 5, 0, time.UTC)
)

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StrPtr returns a pointer to v.
func StrPtr(v string) *string { return &v }

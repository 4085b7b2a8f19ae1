// File: lixenwraith/dotenv/type.go
package dotenv

import (
	"fmt"
	"strconv"
	"time"
)

// String retrieves the resolved value for key.
func (s *Store) String(key string) (string, error) {
	val, found := s.Get(key)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return val, nil
}

// Int64 retrieves an int64 value for key.
// Accepts base prefixes ("0x", "0o", "0b") and falls back to truncating floats.
func (s *Store) Int64(key string) (int64, error) {
	val, err := s.String(key)
	if err != nil {
		return 0, err
	}

	i, err := strconv.ParseInt(val, 0, 64)
	if err == nil {
		return i, nil
	}
	if f, ferr := strconv.ParseFloat(val, 64); ferr == nil {
		return int64(f), nil // Truncate
	}
	// Return the original integer parsing error if float also fails
	return 0, fmt.Errorf("cannot convert %q to int64 for key %s: %w", val, key, err)
}

// Bool retrieves a boolean value for key using strconv.ParseBool rules.
func (s *Store) Bool(key string) (bool, error) {
	val, err := s.String(key)
	if err != nil {
		return false, err
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("cannot convert %q to bool for key %s: %w", val, key, err)
	}
	return b, nil
}

// Float64 retrieves a float64 value for key.
func (s *Store) Float64(key string) (float64, error) {
	val, err := s.String(key)
	if err != nil {
		return 0.0, err
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0.0, fmt.Errorf("cannot convert %q to float64 for key %s: %w", val, key, err)
	}
	return f, nil
}

// Duration retrieves a time.Duration value for key. Bare integers are
// taken as seconds.
func (s *Store) Duration(key string) (time.Duration, error) {
	val, err := s.String(key)
	if err != nil {
		return 0, err
	}

	if i, ierr := strconv.ParseInt(val, 10, 64); ierr == nil {
		return time.Duration(i) * time.Second, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to duration for key %s: %w", val, key, err)
	}
	return d, nil
}

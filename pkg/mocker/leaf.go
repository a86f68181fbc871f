package mocker

import (
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cubahno/schemock/pkg/schema"
	"github.com/google/uuid"
)

const (
	alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// maxSafeInteger is the largest integer exactly representable as a JSON number.
	maxSafeInteger = 1<<53 - 1

	dateTimeLayout = "2006-01-02T15:04:05.000Z"
	dateTimeWindow = 30 * 24 * time.Hour
)

// intBetween returns an integer in [min, max]. When max < min, min is returned.
func intBetween(f *gofakeit.Faker, min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + f.Rand.Int63n(max-min+1)
}

// chance returns true with probability p.
// A draw is always made so the stream advances the same way for any p.
func (m *Mocker) chance(p float64) bool {
	return m.faker.Rand.Float64() < p
}

func alphanumeric(f *gofakeit.Faker, length int) string {
	res := make([]byte, length)
	for i := range res {
		res[i] = alphanumericChars[f.Rand.Intn(len(alphanumericChars))]
	}
	return string(res)
}

// stringLength picks a length within the declared bounds, falling back to the configured range
// for each missing bound. When the bounds cross, the declared one wins.
func (m *Mocker) stringLength(node *schema.Node) int {
	cfg := m.cfg.Lengths.String
	min, max := cfg.Min, cfg.Max
	minDeclared, maxDeclared := node.MinLength() != nil, node.MaxLength() != nil

	if minDeclared {
		min = *node.MinLength()
	}
	if maxDeclared {
		max = *node.MaxLength()
	}

	if min > max {
		if minDeclared && !maxDeclared {
			max = min
		} else {
			min = max
		}
	}

	return int(intBetween(m.faker, int64(min), int64(max)))
}

func (m *Mocker) generateString(node *schema.Node) string {
	return alphanumeric(m.faker, m.stringLength(node))
}

// numberRange resolves declared bounds against the default range.
// A single declared bound that crosses the default range drags the other one along,
// keeping the default span.
func numberRange(minimum, maximum *float64, defMin, defMax float64) (float64, float64) {
	min, max := defMin, defMax
	if minimum != nil {
		min = *minimum
	}
	if maximum != nil {
		max = *maximum
	}

	if min > max {
		switch {
		case minimum != nil && maximum == nil:
			max = min + (defMax - defMin)
		case maximum != nil && minimum == nil:
			min = max - (defMax - defMin)
		}
	}
	return min, max
}

func (m *Mocker) generateInteger(node *schema.Node) int {
	lo, hi := numberRange(node.Minimum(), node.Maximum(), 0, maxSafeInteger)
	min, max := clampSafe(math.Ceil(lo)), clampSafe(math.Floor(hi))
	return int(intBetween(m.faker, min, max))
}

func clampSafe(v float64) int64 {
	if v > maxSafeInteger {
		return maxSafeInteger
	}
	if v < -maxSafeInteger {
		return -maxSafeInteger
	}
	return int64(v)
}

func (m *Mocker) generateFloat(node *schema.Node) float64 {
	min, max := numberRange(node.Minimum(), node.Maximum(), 0, 1)
	if max <= min {
		return min
	}
	return min + m.faker.Rand.Float64()*(max-min)
}

// generateDateTime returns a UTC timestamp within the window before the reference time.
func (m *Mocker) generateDateTime() string {
	return formatTime(m.faker.DateRange(m.refTime.Add(-dateTimeWindow), m.refTime))
}

func (m *Mocker) generateUUID() (string, error) {
	id, err := uuid.NewRandomFromReader(m.faker.Rand)
	if err != nil {
		return "", fmt.Errorf("generating uuid: %w", err)
	}
	return id.String(), nil
}

func (m *Mocker) generateEnum(node *schema.Node) any {
	options := node.Options()
	if len(options) == 0 {
		return nil
	}
	return options[m.faker.Rand.Intn(len(options))]
}

func formatTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

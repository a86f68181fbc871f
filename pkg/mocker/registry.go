package mocker

import (
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cubahno/schemock/internal/types"
)

// GeneratorFunc produces a value for a tagged schema node.
// It receives the mocker's random handle so seeded runs stay reproducible.
// Returning Absent drops the field from the enclosing object.
type GeneratorFunc func(f *gofakeit.Faker) any

// Registry maps custom generator names to generator functions.
// A nil Registry is empty.
type Registry struct {
	generators map[string]GeneratorFunc
}

func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]GeneratorFunc),
	}
}

// Register adds or replaces a generator.
func (r *Registry) Register(name string, fn GeneratorFunc) *Registry {
	r.generators[name] = fn
	return r
}

// Get returns the generator registered under name.
func (r *Registry) Get(name string) (GeneratorFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.generators[name]
	return fn, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns registered generator names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	res := make([]string, 0, len(r.generators))
	for name := range r.generators {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// DefaultGenerators returns the preset generators.
// Dates are anchored to today at midnight UTC.
func DefaultGenerators() *Registry {
	today := startOfDay(time.Now())

	return NewRegistry().
		Register("photoUrl", func(f *gofakeit.Faker) any {
			return f.ImageURL(1280, 720)
		}).
		Register("logo", func(f *gofakeit.Faker) any {
			return f.ImageURL(600, 200)
		}).
		Register("phone", func(f *gofakeit.Faker) any {
			return "+" + f.Numerify("1##########")
		}).
		Register("carPlate", func(f *gofakeit.Faker) any {
			return alphanumeric(f, 7)
		}).
		Register("datePast", func(f *gofakeit.Faker) any {
			return formatTime(f.DateRange(today.AddDate(0, 0, -7), today))
		}).
		Register("dateFuture", func(f *gofakeit.Faker) any {
			return formatTime(f.DateRange(today, today.AddDate(1, 0, 0)))
		}).
		Register("durationMinute", func(f *gofakeit.Faker) any {
			return f.Number(1, 60*24*7)
		}).
		Register("amount", func(f *gofakeit.Faker) any {
			return f.Number(1, 10000) * 100
		}).
		Register("spaceCount", func(f *gofakeit.Faker) any {
			return f.Number(1, 10000) * 100
		}).
		Register("skipByUndefined", func(*gofakeit.Faker) any {
			return Absent
		}).
		Register("skipByEmptyObject", func(*gofakeit.Faker) any {
			return types.NewOrderedMap(0)
		}).
		Register("person.name", asString((*gofakeit.Faker).Name)).
		Register("person.first_name", asString((*gofakeit.Faker).FirstName)).
		Register("person.last_name", asString((*gofakeit.Faker).LastName)).
		Register("person.gender", asString((*gofakeit.Faker).Gender)).
		Register("person.ssn", asString((*gofakeit.Faker).SSN)).
		Register("internet.username", asString((*gofakeit.Faker).Username)).
		Register("internet.ipv4", asString((*gofakeit.Faker).IPv4Address)).
		Register("address.city", asString((*gofakeit.Faker).City)).
		Register("address.country", asString((*gofakeit.Faker).Country)).
		Register("address.street", asString((*gofakeit.Faker).Street)).
		Register("address.zip", asString((*gofakeit.Faker).Zip)).
		Register("company.name", asString((*gofakeit.Faker).Company)).
		Register("company.job_title", asString((*gofakeit.Faker).JobTitle)).
		Register("color.hex", asString((*gofakeit.Faker).HexColor)).
		Register("pet.name", asString((*gofakeit.Faker).PetName))
}

func asString(fn func(*gofakeit.Faker) string) GeneratorFunc {
	return func(f *gofakeit.Faker) any {
		return fn(f)
	}
}

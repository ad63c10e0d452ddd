package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Destinations(t *testing.T) {
	v := NewValidator()

	valid := `[{"city":"Paris","country":"France","start_date":"2025-06-01","end_date":"2025-06-10","budget":2000,"activities":["Museum"]}]`
	assert.NoError(t, v.Validate(Destinations, []byte(valid)))
	assert.NoError(t, v.Validate(Destinations, []byte(`[]`)))
}

func TestValidate_ExtraKeysTolerated(t *testing.T) {
	v := NewValidator()

	doc := `[{"id":1,"notes":"window seat","city":"Paris","country":"France","start_date":"2025-06-01","end_date":"2025-06-10","budget":2000,"activities":[]}]`
	assert.NoError(t, v.Validate(Destinations, []byte(doc)))
}

func TestValidate_WrongShape(t *testing.T) {
	v := NewValidator()

	cases := map[string]string{
		"object not array": `{"city":"Paris"}`,
		"missing key":      `[{"city":"Paris","country":"France","start_date":"2025-06-01","end_date":"2025-06-10","budget":2000}]`,
		"budget as string": `[{"city":"Paris","country":"France","start_date":"2025-06-01","end_date":"2025-06-10","budget":"2000","activities":[]}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			err := v.Validate(Destinations, []byte(doc))
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestValidate_CachesCompiledSchema(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(`{"type":"string"}`, []byte(`"x"`)))
	assert.Error(t, v.Validate(`{"type":"string"}`, []byte(`1`)))

	n := 0
	v.cache.Range(func(_, _ any) bool { n++; return true })
	assert.Equal(t, 1, n)
}

func TestDumpErrors(t *testing.T) {
	assert.Equal(t, "a", dumpErrors([]string{"a"}))
	assert.Equal(t, "a\n- b\n- c\n... and 2 more", dumpErrors([]string{"a", "b", "c", "d", "e"}))
}

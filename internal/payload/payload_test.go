package payload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"plagrelay/internal/payload"
)

func TestGet_PrefersDataWrapper(t *testing.T) {
	body := []byte(`{"success":true,"state":1,"data":{"state":3}}`)

	assert.Equal(t, int64(3), payload.Get(body, "state").Int())
}

func TestGet_FallsBackToTopLevel(t *testing.T) {
	body := []byte(`{"status":"completed","report":{"id":555},"data":{"text":"hello"}}`)

	assert.Equal(t, "completed", payload.Get(body, "status").String())
	assert.Equal(t, int64(555), payload.Get(body, "report.id").Int())
	assert.Equal(t, "hello", payload.Get(body, "text").String())
}

func TestGet_NonObjectData(t *testing.T) {
	body := []byte(`{"data":[1,2],"percent":12}`)

	assert.True(t, payload.Present(payload.Get(body, "percent")))
	assert.False(t, payload.Present(payload.Get(body, "state")))
}

func TestGet_NullAndInvalid(t *testing.T) {
	body := []byte(`{"report":{"percent":"12.5","id":null},"text":"x"}`)

	assert.Equal(t, "12.5", payload.Get(body, "report.percent").Str)
	assert.False(t, payload.Present(payload.Get(body, "report.id")), "null reports missing")
	assert.False(t, payload.Present(payload.Get(body, "text.id")), "non-object intermediate")
	assert.False(t, payload.Present(payload.Get([]byte(`<html>`), "state")))
}

func TestFirst(t *testing.T) {
	body := []byte(`{"percent":40}`)

	r := payload.First(body, "report.percent", "percent")
	assert.Equal(t, float64(40), r.Num)

	assert.False(t, payload.Present(payload.First(body, "a", "b")))
}

func TestFloat(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{`12.5`, 12.5, true},
		{`"33"`, 33, true},
		{`"7.25%"`, 7.25, true},
		{`"abc"`, 0, false},
		{`true`, 0, false},
		{`{}`, 0, false},
	}
	for _, tt := range tests {
		got, ok := payload.Float(gjson.Parse(tt.raw))
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	_, ok := payload.Float(gjson.Result{})
	assert.False(t, ok)
}

func TestInt(t *testing.T) {
	n, ok := payload.Int(gjson.Parse(`5`))
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = payload.Int(gjson.Parse(`"4"`))
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = payload.Int(gjson.Parse(`4.5`))
	assert.False(t, ok)
}

func TestID(t *testing.T) {
	id, ok := payload.ID(gjson.Parse(`99887766554`))
	assert.True(t, ok)
	assert.Equal(t, "99887766554", id)

	id, ok = payload.ID(gjson.Parse(`" abc123 "`))
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)

	_, ok = payload.ID(gjson.Parse(`""`))
	assert.False(t, ok)

	_, ok = payload.ID(gjson.Parse(`{"id":1}`))
	assert.False(t, ok)
}

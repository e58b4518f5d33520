package isbn

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	for _, input := range []string{
		"ISBN: 0-596-52068-9",
		"ISBN 0-596-52068-9",
		"0-596-52068-9",
		"0596520689",
	} {
		v, err := Build(input)
		require.NoError(t, err, input)
		assert.Equal(t, "0596520689", v.Value(), input)
		assert.Equal(t, ISBN10, v.Format(), input)
		assert.Equal(t, "ISBN: 0596520689", v.DisplayValue(), input)
	}
}

func TestBuildISBN13(t *testing.T) {
	v, err := Build("ISBN 978-0-596-52068-7")
	require.NoError(t, err)
	assert.Equal(t, "ISBN: 9780596520687", v.DisplayValue())
	assert.Equal(t, ISBN13, v.Format())
}

func TestBuildNotFound(t *testing.T) {
	_, err := Build("ISBN-10 0-596dadf-52068-9")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Build("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildIsIdempotent(t *testing.T) {
	first, err := Build("Learning Go, ISBN-13: 978-1-4920-7721-0 (paperback)")
	require.NoError(t, err)

	second, err := Build(first.DisplayValue())
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Format(), second.Format())
}

func TestNew(t *testing.T) {
	v := New("0 596-52068 9", ISBN10)
	assert.Equal(t, "0596520689", v.Value())
	assert.Equal(t, "0596520689", v.ID())
	assert.Equal(t, "ISBN: 0596520689", v.String())
	assert.False(t, v.IsZero())
	assert.True(t, ISBN{}.IsZero())
}

func TestConvertedTo(t *testing.T) {
	v := New("0-596-52068-9", ISBN10)
	assert.Equal(t, "9780596520687", v.ConvertedTo(ISBN13))
	assert.Equal(t, "0596520689", v.ConvertedTo(ISBN10))

	back := New(v.ConvertedTo(ISBN13), ISBN13)
	assert.Equal(t, "0596520689", back.ConvertedTo(ISBN10))
}

func TestConvertedToRoundTrip(t *testing.T) {
	for _, isbn10 := range []string{
		"0306406152",
		"0140449116",
		"020161622X",
		"0596100000",
		"155860832X",
	} {
		isbn13 := New(isbn10, ISBN10).ConvertedTo(ISBN13)
		assert.Equal(t, isbn10, New(isbn13, ISBN13).ConvertedTo(ISBN10), isbn10)
	}
}

func TestConvertedToKnownPairs(t *testing.T) {
	assert.Equal(t, "9780306406157", New("0306406152", ISBN10).ConvertedTo(ISBN13))
	assert.Equal(t, "9780201616224", New("020161622X", ISBN10).ConvertedTo(ISBN13))
	assert.Equal(t, "9781558608320", New("155860832X", ISBN10).ConvertedTo(ISBN13))
	assert.Equal(t, "020161622X", New("9780201616224", ISBN13).ConvertedTo(ISBN10))
	assert.Equal(t, "0596100000", New("978-0-596-10000-1", ISBN13).ConvertedTo(ISBN10))
}

func TestConvertedTo979Prefix(t *testing.T) {
	// The prefix is dropped whatever it is.
	assert.Equal(t, "1090636075", New("979-10-90636-07-1", ISBN13).ConvertedTo(ISBN10))
}

func TestConvertedToSameFormat(t *testing.T) {
	v := New("978-0-596-52068-7", ISBN13)
	assert.Equal(t, v.Value(), v.ConvertedTo(ISBN13))
}

func TestConvertedToDoesNotMutate(t *testing.T) {
	v := New("0596520689", ISBN10)
	_ = v.ConvertedTo(ISBN13)
	assert.Equal(t, "0596520689", v.Value())
	assert.Equal(t, ISBN10, v.Format())
}

func TestEqualIgnoresSeparators(t *testing.T) {
	a := New("0-596-52068-9", ISBN10)
	b := New("0 596 52068 9", ISBN10)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a, b)
	assert.False(t, a.Equal(New("9780596520687", ISBN13)))
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]ISBN{"isbn": New("978-0-596-52068-7", ISBN13)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"isbn":"9780596520687"}`, string(data))
}

func TestInvalidError(t *testing.T) {
	var err error = &InvalidError{Value: "12-34"}
	assert.Equal(t, `isbn: invalid value "12-34"`, err.Error())

	var invalid *InvalidError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "12-34", invalid.Value)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestForms(t *testing.T) {
	assert.Equal(t, map[Format]string{
		ISBN10: "0596520689",
		ISBN13: "9780596520687",
	}, New("0-596-52068-9", ISBN10).Forms())

	assert.Equal(t, map[Format]string{
		ISBN10: "0596520689",
		ISBN13: "9780596520687",
	}, New("978-0-596-52068-7", ISBN13).Forms())

	assert.Equal(t, map[Format]string{
		ISBN13: "9791090636071",
	}, New("979-10-90636-07-1", ISBN13).Forms())
}

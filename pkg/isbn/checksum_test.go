package isbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumISBN10(t *testing.T) {
	assert.Equal(t, byte('9'), Checksum("059652068", ISBN10))
	assert.Equal(t, byte('2'), Checksum("030640615", ISBN10))
	assert.Equal(t, byte('6'), Checksum("014044911", ISBN10))
}

func TestChecksumISBN10Boundaries(t *testing.T) {
	// Weighted sum divisible by 11.
	assert.Equal(t, byte('0'), Checksum("059610000", ISBN10))
	assert.Equal(t, byte('0'), Checksum("000000000", ISBN10))
	// 11 - remainder == 10.
	assert.Equal(t, byte('X'), Checksum("020161622", ISBN10))
	assert.Equal(t, byte('X'), Checksum("123456789", ISBN10))
}

func TestChecksumISBN13(t *testing.T) {
	assert.Equal(t, byte('7'), Checksum("978059652068", ISBN13))
	assert.Equal(t, byte('4'), Checksum("978020161622", ISBN13))
	assert.Equal(t, byte('1'), Checksum("979109063607", ISBN13))
}

func TestChecksumISBN13Boundary(t *testing.T) {
	assert.Equal(t, byte('0'), Checksum("978155860832", ISBN13))
}

func TestChecksumTreatsNonDigitsAsZero(t *testing.T) {
	assert.Equal(t, Checksum("050652068", ISBN10), Checksum("05X652068", ISBN10))
	assert.Equal(t, byte('4'), Checksum("05X652068", ISBN10))
}

func TestChecksumUnknownFormat(t *testing.T) {
	assert.Equal(t, byte(0), Checksum("059652068", Format("ean")))
}

package modpoly

import (
	"bytes"
	"io"
	"math/big"
	"testing"

	"github.com/ecpoint/go-sea/pkg/util/assert"
)

func sample() Record {
	return Record{
		L: 5,
		Terms: []Term{
			{big.NewInt(1), 6, 0},
			{big.NewInt(-1), 5, 1},
			{big.NewInt(244), 5, 0},
			{big.NewInt(-1337), 0, 0},
		},
	}
}

func TestStream_RoundTrip(t *testing.T) {
	var buf bytes.Buffer

	w := NewWriter(&buf)
	assert.NoError(t, w.WritePrime(big.NewInt(10007)))
	assert.NoError(t, w.WriteRecord(sample()))
	assert.NoError(t, w.Flush())

	r := NewReader(&buf)

	p, err := r.ReadPrime()
	assert.NoError(t, err)
	assert.BigEqualInt64(t, 10007, p)

	rec, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, 5, rec.L)
	assert.Equal(t, 4, len(rec.Terms))
	assert.BigEqualInt64(t, -1337, rec.Terms[3].C)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_Truncated(t *testing.T) {
	var buf bytes.Buffer

	w := NewWriter(&buf)
	assert.NoError(t, w.WriteRecord(sample()))
	assert.NoError(t, w.Flush())

	// chop the terminator off
	trimmed := buf.String()[:buf.Len()-8]

	r := NewReader(bytes.NewBufferString(trimmed))

	_, err := r.Next()
	assert.Error(t, err)
}

func TestReader_BadTokens(t *testing.T) {
	r := NewReader(bytes.NewBufferString("5\nzz!\n1\n0\n"))

	_, err := r.Next()
	assert.Error(t, err)

	// an even "prime" is rejected
	r = NewReader(bytes.NewBufferString("4\n1\n0\n0\n"))

	_, err = r.Next()
	assert.Error(t, err)
}

func TestAdjustPrime(t *testing.T) {
	// prime stays put
	p, off := AdjustPrime(big.NewInt(10007), false)
	assert.BigEqualInt64(t, 10007, p)
	assert.Equal(t, int64(0), off)

	// 2^8 moves up to 257
	p, off = AdjustPrime(big.NewInt(256), false)
	assert.BigEqualInt64(t, 257, p)
	assert.Equal(t, int64(1), off)

	// and down to 251
	p, off = AdjustPrime(big.NewInt(256), true)
	assert.BigEqualInt64(t, 251, p)
	assert.Equal(t, int64(-5), off)
}

func TestReduce_CoefficientsAndAdjustment(t *testing.T) {
	var (
		raw bytes.Buffer
		out bytes.Buffer
	)

	w := NewWriter(&raw)
	assert.NoError(t, w.WriteRecord(sample()))
	assert.NoError(t, w.Flush())

	// composite modulus is nudged up to 257
	used, err := Reduce(big.NewInt(256), &raw, &out, false, 0)
	assert.NoError(t, err)
	assert.BigEqualInt64(t, 257, used)

	r := NewReader(&out)

	p, err := r.ReadPrime()
	assert.NoError(t, err)
	assert.BigEqualInt64(t, 257, p)

	rec, err := r.Next()
	assert.NoError(t, err)

	// every coefficient reduced into [0, p), matching in-memory reduction
	for i, tm := range rec.Terms {
		want := new(big.Int).Mod(sample().Terms[i].C, p)
		assert.BigEqual(t, want, tm.C)
		assert.True(t, tm.C.Sign() >= 0 && tm.C.Cmp(p) < 0)
	}
}

func TestReduce_MaxL(t *testing.T) {
	var (
		raw bytes.Buffer
		out bytes.Buffer
	)

	w := NewWriter(&raw)

	rec := sample()
	assert.NoError(t, w.WriteRecord(rec))

	rec.L = 11
	assert.NoError(t, w.WriteRecord(rec))
	assert.NoError(t, w.Flush())

	_, err := Reduce(big.NewInt(10007), &raw, &out, false, 7)
	assert.NoError(t, err)

	r := NewReader(&out)

	_, err = r.ReadPrime()
	assert.NoError(t, err)

	got, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, 5, got.L)

	// the l = 11 record was dropped
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

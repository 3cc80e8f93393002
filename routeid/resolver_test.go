// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package routeid

import (
	"errors"
	"testing"

	"github.com/patrickbr/gtfscanon/errkind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translinkBands() []Band {
	return []Band{
		{Prefix: 'C', Name: "community shuttle", Offset: 30000},
		{Prefix: 'N', Name: "nightbus", Offset: 140000},
		{Prefix: 'P', Name: "peak", Offset: 160000},
		{Prefix: 'R', Name: "rapid", Offset: 180000},
	}
}

func TestResolveNumeric(t *testing.T) {
	r, err := NewResolver(0, translinkBands())
	require.NoError(t, err)

	id, err := r.Resolve("099")
	require.NoError(t, err)
	assert.Equal(t, int64(99), id.ID)
	assert.Equal(t, "99", id.ShortName)
	assert.Equal(t, "099", id.RawCode)

	id, err = r.Resolve("0")
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.ID)
	assert.Equal(t, "0", id.ShortName)
}

func TestResolveFamily(t *testing.T) {
	r, err := NewResolver(0, translinkBands())
	require.NoError(t, err)

	id, err := r.Resolve("C12")
	require.NoError(t, err)
	assert.Equal(t, int64(30012), id.ID)
	assert.Equal(t, "C12", id.ShortName)

	id, err = r.Resolve("N9")
	require.NoError(t, err)
	assert.Equal(t, int64(140009), id.ID)

	id, err = r.Resolve("R5")
	require.NoError(t, err)
	assert.Equal(t, int64(180005), id.ID)

	// only the first digit run counts
	id, err = r.Resolve("P1-2")
	require.NoError(t, err)
	assert.Equal(t, int64(160001), id.ID)
}

func TestResolveErrors(t *testing.T) {
	r, err := NewResolver(0, translinkBands())
	require.NoError(t, err)

	_, err = r.Resolve("SEABUS")
	require.Error(t, err)
	assert.True(t, errkind.IsMalformedInput(err))
	assert.False(t, errkind.IsConfigGap(err))

	_, err = r.Resolve("")
	assert.True(t, errkind.IsMalformedInput(err))

	_, err = r.Resolve("X12")
	require.Error(t, err)
	assert.True(t, errkind.IsConfigGap(err))

	var ce *CodeError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "X12", ce.Code)

	_, err = r.Resolve("99B")
	assert.True(t, errkind.IsConfigGap(err))

	_, err = r.Resolve("C12345")
	assert.True(t, errkind.IsMalformedInput(err))
}

func TestBandValidation(t *testing.T) {
	_, err := NewResolver(0, []Band{{Prefix: 'C', Offset: 5000}})
	assert.True(t, errkind.IsConfigGap(err), "band overlaps numeric domain")

	_, err = NewResolver(0, []Band{{Prefix: 'C', Offset: 30000}, {Prefix: 'N', Offset: 35000}})
	assert.True(t, errkind.IsConfigGap(err), "bands overlap")

	_, err = NewResolver(0, []Band{{Prefix: 'C', Offset: 30000}, {Prefix: 'C', Offset: 50000}})
	assert.True(t, errkind.IsConfigGap(err), "duplicate prefix")

	_, err = NewResolver(0, []Band{{Prefix: 'c', Offset: 30000}})
	assert.True(t, errkind.IsConfigGap(err), "lowercase prefix")

	r, err := NewResolver(100, []Band{{Prefix: 'C', Offset: 100}, {Prefix: 'N', Offset: 200}})
	require.NoError(t, err)
	assert.Equal(t, int64(100), r.Width())
}

func TestIdentityUniqueness(t *testing.T) {
	r, err := NewResolver(0, translinkBands())
	require.NoError(t, err)

	codes := []string{"2", "02", "C2", "N2", "P2", "R2", "99", "C99", "N99", "R99"}
	reg := NewRegistry()
	seen := make(map[int64]string)

	for _, c := range codes {
		id, err := r.Resolve(c)
		require.NoError(t, err)
		if c == "02" {
			// same number as "2", must be refused by the registry
			assert.True(t, errkind.IsConfigGap(reg.Add(id)))
			continue
		}
		if prev, ok := seen[id.ID]; ok {
			t.Errorf("%s and %s both resolve to %d", prev, c, id.ID)
		}
		seen[id.ID] = c
		require.NoError(t, reg.Add(id))
	}

	assert.Equal(t, 9, reg.Len())
	ids := reg.IDs()
	assert.Equal(t, int64(2), ids[0])
	assert.Equal(t, int64(180099), ids[len(ids)-1])

	code, ok := reg.Code(30002)
	assert.True(t, ok)
	assert.Equal(t, "C2", code)

	// re-adding is fine
	id, _ := r.Resolve("C2")
	assert.NoError(t, reg.Add(id))
}

func TestFamily(t *testing.T) {
	r, err := NewResolver(0, translinkBands())
	require.NoError(t, err)

	b, ok := r.Family("N19")
	assert.True(t, ok)
	assert.Equal(t, "nightbus", b.Name)

	_, ok = r.Family("19")
	assert.False(t, ok)
}

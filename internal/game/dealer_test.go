package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDealerPolicy(t *testing.T) {
	d := NewDealer()
	assert.False(t, d.ShouldStand())

	dealTo(d.Hand(), "7,4")
	assert.False(t, d.ShouldStand())
	dealTo(d.Hand(), "9")
	assert.True(t, d.ShouldStand())

	d = NewDealer()
	dealTo(d.Hand(), "K,2")
	assert.False(t, d.ShouldStand())
	dealTo(d.Hand(), "J")
	assert.True(t, d.ShouldStand())
	assert.True(t, d.Hand().IsBust())
}

func TestDealerStandsOnSoftSeventeen(t *testing.T) {
	d := NewDealer()
	dealTo(d.Hand(), "A,6")
	assert.True(t, d.ShouldStand())
}

func TestDealerPlay(t *testing.T) {
	d := NewDealer()
	dealTo(d.Hand(), "10,2")
	src := NewStackedSource(def.MustParse("2,A,3,9")...)

	d.Play(src)
	// 12 -> 14 -> 15 -> 18
	assert.Equal(t, 18, d.Hand().Score())
	assert.True(t, d.Hand().Stood())
	assert.Equal(t, 1, src.Remaining())
}

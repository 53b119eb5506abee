package survey

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(n int) *Catalog {
	c := &Catalog{}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("q%d", i+1)
		c.Questions = append(c.Questions, model.Question{
			ID:    id,
			Text:  "question " + id,
			ItemA: "models/" + id + "_a.glb",
			ItemB: "models/" + id + "_b.glb",
			Image: "images/" + id + ".png",
		})
	}
	return c
}

func TestAssignmentSidesWithoutSwap(t *testing.T) {
	a := Assignment{Question: catalogOf(1).Questions[0], Swap: false}

	assert.Equal(t, Side{Item: "models/q1_a.glb", Label: model.LabelA, Field: "q1_Model A"}, a.Left())
	assert.Equal(t, Side{Item: "models/q1_b.glb", Label: model.LabelB, Field: "q1_Model B"}, a.Right())
}

func TestAssignmentSidesWithSwap(t *testing.T) {
	a := Assignment{Question: catalogOf(1).Questions[0], Swap: true}

	assert.Equal(t, Side{Item: "models/q1_b.glb", Label: model.LabelB, Field: "q1_Model B"}, a.Left())
	assert.Equal(t, Side{Item: "models/q1_a.glb", Label: model.LabelA, Field: "q1_Model A"}, a.Right())
}

func TestLabelAlwaysMatchesRenderedItem(t *testing.T) {
	r := NewRandomizer(rand.NewPCG(1, 2))
	c := catalogOf(20)

	for round := 0; round < 50; round++ {
		for _, a := range r.Assign(c) {
			for _, side := range []Side{a.Left(), a.Right()} {
				want := a.Question.ItemA
				if side.Label == model.LabelB {
					want = a.Question.ItemB
				}
				require.Equal(t, want, side.Item, "question %s swap=%v", a.Question.ID, a.Swap)
				require.Equal(t, RatingField(a.Question.ID, side.Label), side.Field)
			}
			require.NotEqual(t, a.Left().Label, a.Right().Label)
		}
	}
}

func TestAssignOneDrawPerQuestionInOrder(t *testing.T) {
	c := catalogOf(5)
	got := NewRandomizer(rand.NewPCG(7, 7)).Assign(c)

	require.Len(t, got, 5)
	for i, a := range got {
		assert.Equal(t, c.Questions[i], a.Question)
	}
}

func TestAssignIsReproducibleWithSameSource(t *testing.T) {
	c := catalogOf(32)
	a := NewRandomizer(rand.NewPCG(42, 43)).Assign(c)
	b := NewRandomizer(rand.NewPCG(42, 43)).Assign(c)
	assert.Equal(t, a, b)
}

func TestAssignDrawsBothOutcomes(t *testing.T) {
	r := NewRandomizer(nil)
	c := catalogOf(1)

	swaps := 0
	const draws = 2000
	for i := 0; i < draws; i++ {
		if r.Assign(c)[0].Swap {
			swaps++
		}
	}
	// 公平硬币, 偏离 15% 的概率可以忽略
	assert.InDelta(t, draws/2, swaps, draws*0.15)
}

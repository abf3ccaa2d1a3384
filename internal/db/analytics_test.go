package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahmed88lk/KindnessChain/internal/models"
)

func TestEstimateImpact(t *testing.T) {
	impact := estimateImpact([]models.CategoryCount{
		{Category: "Environmental", Count: 3},
		{Category: "Donation", Count: 2},
		{Category: "Volunteering", Count: 4},
		{Category: "Community", Count: 10},
	})

	assert.Equal(t, 7, impact.TreesPlanted)
	assert.Equal(t, 8, impact.MealsProvided)
	assert.Equal(t, 12, impact.HoursVolunteered)
	assert.Equal(t, 75, impact.MoneyDonated)
}

func TestEstimateImpactEmpty(t *testing.T) {
	assert.Equal(t, models.ImpactEstimates{}, estimateImpact(nil))
}

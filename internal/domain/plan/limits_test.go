package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

func TestCeiling_Allows(t *testing.T) {
	cases := []struct {
		name    string
		ceiling plan.Ceiling
		current int
		want    bool
	}{
		{"por debajo del techo", 3, 2, true},
		{"exactamente en el techo rechaza", 3, 3, false},
		{"por encima del techo rechaza", 3, 5, false},
		{"techo ilimitado siempre admite", plan.Unlimited, 1_000_000, true},
		{"techo cero nunca admite", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ceiling.Allows(tc.current))
		})
	}
}

func TestCeilingFor_TablaDePlanes(t *testing.T) {
	cases := []struct {
		plan     plan.Plan
		category plan.Category
		want     plan.Ceiling
	}{
		{plan.Free, plan.CategoryProjects, 3},
		{plan.Free, plan.CategoryMembers, 5},
		{plan.Free, plan.CategoryBoots, 10},
		{plan.Pro, plan.CategoryProjects, 50},
		{plan.Pro, plan.CategoryTasks, 5000},
		{plan.Growth, plan.CategoryTasks, plan.Unlimited},
		{plan.Growth, plan.CategoryChat, plan.Unlimited},
		{plan.ThetaPlus, plan.CategoryProjects, plan.Unlimited},
		{plan.ThetaPlus, plan.CategoryBoots, 5000},
		{plan.Lifetime, plan.CategoryBoots, 2000},
	}
	for _, tc := range cases {
		got := plan.CeilingFor(tc.plan, tc.category)
		assert.Equal(t, tc.want, got, "plan %s categoría %s", tc.plan, tc.category)
	}
}

// Un plan desconocido degrada a los límites de Free: nunca ilimitado por accidente.
func TestCeilingFor_PlanDesconocidoDegradaAFree(t *testing.T) {
	got := plan.CeilingFor(plan.Plan("enterprise-beta"), plan.CategoryProjects)
	assert.Equal(t, plan.Ceiling(3), got)
}

// Una categoría fuera de la enumeración cierra el paso (techo 0).
func TestCeilingFor_CategoriaDesconocidaFailaCerrado(t *testing.T) {
	got := plan.CeilingFor(plan.Pro, plan.Category("widgets"))
	assert.Equal(t, plan.Ceiling(0), got)
	assert.False(t, got.Allows(0))
}

func TestCeilingFor_GateDeAnalytics(t *testing.T) {
	assert.Equal(t, plan.Ceiling(0), plan.CeilingFor(plan.Free, plan.CategoryAnalytics),
		"free no tiene analytics")
	assert.Equal(t, plan.Unlimited, plan.CeilingFor(plan.Pro, plan.CategoryAnalytics),
		"pro tiene analytics habilitado")
}

func TestLimitsFor_RetencionPorPlan(t *testing.T) {
	assert.Equal(t, 7, plan.LimitsFor(plan.Free).RetentionDays)
	assert.Equal(t, 30, plan.LimitsFor(plan.Pro).RetentionDays)
	assert.Equal(t, 90, plan.LimitsFor(plan.Growth).RetentionDays)
	assert.Equal(t, 365, plan.LimitsFor(plan.ThetaPlus).RetentionDays)
}

func TestFromString_NormalizaYDegrada(t *testing.T) {
	assert.Equal(t, plan.Pro, plan.FromString("pro"))
	assert.Equal(t, plan.Free, plan.FromString("no-existe"),
		"plan no reconocido degrada a free")
}

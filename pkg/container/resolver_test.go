package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Car interface {
	Model() string
}

type Porsche struct{}

func NewPorsche() *Porsche { return &Porsche{} }
func (p *Porsche) Model() string { return "911" }

type Ferrari struct{}

func NewFerrari() *Ferrari { return &Ferrari{} }
func (f *Ferrari) Model() string { return "F40" }

type Garage struct {
	cars []Car
}

func NewGarage(cars []Car) *Garage { return &Garage{cars: cars} }

type CarIndex struct {
	byName map[string]Car
}

func NewCarIndex(byName map[string]Car) *CarIndex { return &CarIndex{byName: byName} }

type CarSet struct {
	cars map[Car]struct{}
}

func NewCarSet(cars map[Car]struct{}) *CarSet { return &CarSet{cars: cars} }

type Driver struct {
	car Car
}

func NewDriver(car Car) *Driver { return &Driver{car: car} }

func registerCars(t *testing.T, c *Container) {
	t.Helper()
	require.NoError(t, c.Register(NewPorsche, As((*Car)(nil))))
	require.NoError(t, c.Register(NewFerrari, As((*Car)(nil))))
}

func TestScalar_ZeroMatches(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	require.NoError(t, c.Register(NewDriver))

	requireCode(t, c.Build(), CodeUnresolvedDependency)
}

func TestScalar_Ambiguous(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	registerCars(t, c)
	require.NoError(t, c.Register(NewDriver))

	err := c.Build()
	requireCode(t, err, CodeAmbiguousDependency)
	assert.Contains(t, err.Error(), "porsche")
	assert.Contains(t, err.Error(), "ferrari")
}

func TestScalar_UniqueMatchByCapability(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	require.NoError(t, c.Register(NewPorsche, As((*Car)(nil))))
	require.NoError(t, c.Register(NewDriver))
	require.NoError(t, c.Build())

	driver, err := Resolve[*Driver](c)
	require.NoError(t, err)
	assert.IsType(t, &Porsche{}, driver.car)
}

func TestListOf_RegistrationOrder(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	registerCars(t, c)
	require.NoError(t, c.Register(NewGarage))
	require.NoError(t, c.Build())

	garage, err := Resolve[*Garage](c)
	require.NoError(t, err)
	require.Len(t, garage.cars, 2)
	assert.IsType(t, &Porsche{}, garage.cars[0])
	assert.IsType(t, &Ferrari{}, garage.cars[1])
}

func TestListOf_ReversedRegistrationOrder(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	require.NoError(t, c.Register(NewFerrari, As((*Car)(nil))))
	require.NoError(t, c.Register(NewPorsche, As((*Car)(nil))))
	require.NoError(t, c.Register(NewGarage))
	require.NoError(t, c.Build())

	garage, err := Resolve[*Garage](c)
	require.NoError(t, err)
	require.Len(t, garage.cars, 2)
	assert.IsType(t, &Ferrari{}, garage.cars[0])
	assert.IsType(t, &Porsche{}, garage.cars[1])
}

func TestListOf_EmptyIsNotAnError(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	require.NoError(t, c.Register(NewGarage))
	require.NoError(t, c.Build())

	garage, err := Resolve[*Garage](c)
	require.NoError(t, err)
	assert.Empty(t, garage.cars)
}

func TestSetOf(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	registerCars(t, c)
	require.NoError(t, c.Register(NewCarSet))
	require.NoError(t, c.Build())

	set, err := Resolve[*CarSet](c)
	require.NoError(t, err)
	assert.Len(t, set.cars, 2)
}

func TestMapByName(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	registerCars(t, c)
	require.NoError(t, c.Register(NewCarIndex))
	require.NoError(t, c.Build())

	index, err := Resolve[*CarIndex](c)
	require.NoError(t, err)
	require.Len(t, index.byName, 2)
	assert.IsType(t, &Porsche{}, index.byName["porsche"])
	assert.IsType(t, &Ferrari{}, index.byName["ferrari"])
}

func TestMapByName_NoTypeMatchesEverything(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	registerCars(t, c)

	var got map[string]any
	err := c.RegisterFactory("census", FactoryFunc(func(deps []any) (any, error) {
		got = deps[0].(map[string]any)
		return struct{}{}, nil
	}), WithRequests(InjectionRequest{Shape: MapByName}))
	require.NoError(t, err)
	require.NoError(t, c.Build())

	require.Len(t, got, 2)
	assert.Contains(t, got, "porsche")
	assert.Contains(t, got, "ferrari")
}

func TestByNameOverride(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	registerCars(t, c)
	require.NoError(t, c.Register(NewDriver, ByName(0, "ferrari")))
	require.NoError(t, c.Build())

	driver, err := Resolve[*Driver](c)
	require.NoError(t, err)
	assert.IsType(t, &Ferrari{}, driver.car)
}

func TestByNameOverride_UnknownName(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	registerCars(t, c)
	require.NoError(t, c.Register(NewDriver, ByName(0, "lada")))

	requireCode(t, c.Build(), CodeUnresolvedDependency)
}

func TestByNameOverride_TypeMismatch(t *testing.T) {
	t.Parallel()

	c := newTestContainer()
	registerCars(t, c)
	require.NoError(t, c.Register(NewDatabase))
	require.NoError(t, c.Register(NewDriver, ByName(0, "database")))

	requireCode(t, c.Build(), CodeTypeMismatch)
}

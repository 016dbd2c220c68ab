package container

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeFunc_RejectsNonFunctions(t *testing.T) {
	t.Parallel()

	_, err := DescribeFunc(42)
	requireCode(t, err, CodeConfiguration)

	_, err = DescribeFunc(&Database{})
	requireCode(t, err, CodeConfiguration)
}

func TestDescribeFunc_RejectsBadSignatures(t *testing.T) {
	t.Parallel()

	_, err := DescribeFunc(func() {})
	requireCode(t, err, CodeConfiguration)

	_, err = DescribeFunc(func() (*Database, *Repository, error) { return nil, nil, nil })
	requireCode(t, err, CodeConfiguration)

	_, err = DescribeFunc(func() (*Database, *Repository) { return nil, nil })
	requireCode(t, err, CodeConfiguration)

	_, err = DescribeFunc(func(dbs ...*Database) *Repository { return nil })
	requireCode(t, err, CodeConfiguration)
}

func TestDescribeFunc_Defaults(t *testing.T) {
	t.Parallel()

	d, err := DescribeFunc(NewRepository)
	require.NoError(t, err)

	assert.Equal(t, "repository", d.Name())
	require.Len(t, d.Capabilities(), 1)
	assert.Equal(t, reflect.TypeOf((*Repository)(nil)), d.Capabilities()[0])

	reqs := d.ConstructorRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, Scalar, reqs[0].Shape)
	assert.Equal(t, reflect.TypeOf((*Database)(nil)), reqs[0].Type)
}

func TestDescribeFunc_SetterValidation(t *testing.T) {
	t.Parallel()

	_, err := DescribeFunc(newTunedCar, WithSetter("SetTurbo"))
	requireCode(t, err, CodeConfiguration)

	// Engine setter exists and takes one argument.
	d, err := DescribeFunc(newTunedCar, WithSetter("SetEngine"))
	require.NoError(t, err)
	require.Len(t, d.setterRequests, 1)
	assert.Equal(t, "SetEngine", d.setterRequests[0].method)
	assert.Equal(t, reflect.TypeOf((*engine)(nil)), d.setterRequests[0].request.Type)
}

func TestTypedRequest_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		typ   reflect.Type
		shape Shape
		elem  reflect.Type
	}{
		{
			name:  "slice is a list",
			typ:   reflect.TypeOf([]Car(nil)),
			shape: ListOf,
			elem:  reflect.TypeOf((*Car)(nil)).Elem(),
		},
		{
			name:  "string-keyed map is a name map",
			typ:   reflect.TypeOf(map[string]Car(nil)),
			shape: MapByName,
			elem:  reflect.TypeOf((*Car)(nil)).Elem(),
		},
		{
			name:  "untyped name map has no capability",
			typ:   reflect.TypeOf(map[string]any(nil)),
			shape: MapByName,
			elem:  nil,
		},
		{
			name:  "empty-struct map is a set",
			typ:   reflect.TypeOf(map[Car]struct{}(nil)),
			shape: SetOf,
			elem:  reflect.TypeOf((*Car)(nil)).Elem(),
		},
		{
			name:  "other map kinds fall back to list",
			typ:   reflect.TypeOf(map[int]Car(nil)),
			shape: ListOf,
			elem:  reflect.TypeOf((*Car)(nil)).Elem(),
		},
		{
			name:  "plain type is scalar",
			typ:   reflect.TypeOf((*Database)(nil)),
			shape: Scalar,
			elem:  reflect.TypeOf((*Database)(nil)),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := TypedRequest(tt.typ)
			assert.Equal(t, tt.shape, req.Shape)
			assert.Equal(t, tt.elem, req.Type)
		})
	}
}

func TestShapeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "scalar", Scalar.String())
	assert.Equal(t, "list", ListOf.String())
	assert.Equal(t, "set", SetOf.String())
	assert.Equal(t, "map-by-name", MapByName.String())
}

func TestComponentName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "print_service", componentName(reflect.TypeOf(PrintService{})))
	assert.Equal(t, "print_service", componentName(reflect.TypeOf(&PrintService{})))
	assert.Equal(t, "database", componentName(reflect.TypeOf(Database{})))
}

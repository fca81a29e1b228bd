//go:build !cgo || !xframes

package native

import (
	"errors"
	"testing"

	"github.com/go-xframes/xframes/pkg/boundary"
	"github.com/go-xframes/xframes/pkg/dispatch"
)

func TestStubStartUnavailable(t *testing.T) {
	if Available {
		t.Fatal("stub reports the library as available")
	}
	inited := false
	router := dispatch.NewRouter()
	router.HandleInit(func() { inited = true })

	err := New().Start(boundary.StartConfig{AssetsPath: "./assets"}, boundary.NewInbound(router))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Start() error = %v, want ErrUnavailable", err)
	}
	if inited {
		t.Error("stub called init")
	}
}

func TestStubSubmissionsAreNoops(t *testing.T) {
	b, err := boundary.NewBuffer([]byte(`[1]`))
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()
	r := New()
	r.SetElement(b)
	r.SetChildren(0, b)
}

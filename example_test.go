package nkv_test

import (
	"fmt"
	"os"

	"github.com/hupe1980/nkv"
	"github.com/hupe1980/nkv/value"
)

func Example() {
	dir, err := os.MkdirTemp("", "nkv")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	store, err := nkv.New("example.nkv", nkv.WithPath(dir))
	if err != nil {
		panic(err)
	}

	m := value.NewMap()
	m.Set("greeting", value.String("hello"))
	m.Set("count", value.Int(42))
	m.Set("ratio", value.Float(-3.5))
	m.Set("enabled", value.Bool(false))

	if err := store.WriteBatch(m); err != nil {
		panic(err)
	}

	got, err := store.Read()
	if err != nil {
		panic(err)
	}

	got.Range(func(key string, v value.Value) bool {
		fmt.Printf("%s = %#v\n", key, v)
		return true
	})
	// Output:
	// greeting = string("hello")
	// count = int(42)
	// ratio = float(-3.5)
	// enabled = bool(false)
}

// Command main demonstrates type preservation: a mixed set of scalars is
// written entry by entry, read back, and checked for exact kind and content.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/nkv"
	"github.com/hupe1980/nkv/value"
)

func main() {
	store, err := nkv.New("type_test.nkv")
	if err != nil {
		log.Fatal(err)
	}
	defer os.Remove(store.Path())

	entries := []struct {
		key string
		val any
	}{
		{"string", "hello world"},
		{"integer", 42},
		{"float", 3.14159},
		{"bool_true", true},
		{"bool_false", false},
		{"negative", -100},
		{"zero", 0},
	}

	for _, e := range entries {
		if err := store.WriteAny(e.key, e.val); err != nil {
			log.Fatal(err)
		}
	}

	got, err := store.Read()
	if err != nil {
		log.Fatal(err)
	}

	ok := true
	for _, e := range entries {
		want, err := value.FromAny(e.val)
		if err != nil {
			log.Fatal(err)
		}
		v, found := got.Get(e.key)
		if !found || !want.Equal(v) {
			fmt.Printf("FAIL %s: want %#v, got %#v\n", e.key, want, v)
			ok = false
			continue
		}
		fmt.Printf("ok   %s = %#v\n", e.key, v)
	}

	if !ok {
		os.Exit(1)
	}
	fmt.Println("all kinds preserved")
}

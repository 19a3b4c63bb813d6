// Package nkv implements a typed key-value persistence format for flat
// mappings of scalar values.
//
// NKV stores an ordered mapping of string keys to values of exactly four
// kinds (string, integer, float, boolean) in a single file, and reconstructs
// the mapping later with the exact kinds intact: the string "42", the integer
// 42 and the float 42.0 stay distinguishable after a round trip because every
// record carries an explicit kind tag, never inferred from payload text.
//
// # Quick Start
//
//	store, _ := nkv.New("data.nkv", nkv.WithPath("/tmp"))
//
//	m := value.NewMap()
//	m.Set("greeting", value.String("hello"))
//	m.Set("count", value.Int(7))
//	m.Set("ratio", value.Float(-3.5))
//	m.Set("enabled", value.Bool(false))
//
//	_ = store.WriteBatch(m)  // one encode pass, one atomic file write
//
//	got, _ := store.Read()   // fresh ordered map, kinds preserved
//
// Single-entry writes are supported (Write, WriteAny) but rewrite the whole
// file each time; WriteBatch is the bulk path.
//
// # Durability
//
// Every write goes to a temporary file in the target directory and is
// atomically renamed over the backing file, so readers never observe a
// partially written store. Errors surface to the caller; the engine performs
// no logging, retries, or silent recovery.
package nkv

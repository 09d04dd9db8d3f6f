// Package runtimehooks is the full chic_rt import catalog the WASM backend
// may reference (§6). It is transcribed from the signature table of the
// original compiler's runtime_hooks module (see DESIGN.md); only the subset
// spec §4.2 describes in detail (string/vec/rc/arc/borrow/drop/atomic/
// assert/throw/await/panic/coverage) gets dedicated lowering logic in
// pkg/codegen/wasmgen, but every hook here is always importable with its
// declared signature, matching §6's "MUST include every hook the module
// references and MUST match the declared signature exactly".
package runtimehooks

import "github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"

// HookID enumerates every chic_rt import the WASM backend may reference.
type HookID int

const (
	HookObjectNew HookID = iota
	HookPanic
	HookAbort
	HookThrow
	HookHasPendingException
	HookTakePendingException
	HookAwait
	HookYield
	HookAsyncCancel
	HookAsyncSpawn
	HookAsyncSpawnLocal
	HookAsyncScope
	HookAsyncTaskHeader
	HookAsyncTaskResult
	HookAsyncTokenState
	HookAsyncTokenNew
	HookAsyncTokenCancel
	HookBorrowShared
	HookBorrowUnique
	HookBorrowRelease
	HookDropResource
	HookDropMissing
	HookTypeSize
	HookTypeAlign
	HookTypeMetadata
	HookTypeDropGlue
	HookTypeCloneGlue
	HookTypeHashGlue
	HookTypeEqGlue
	HookDropInvoke
	HookHashInvoke
	HookEqInvoke
	HookTraceEnter
	HookTraceExit
	HookTraceFlush
	HookCoverageHit
	HookAlloc
	HookAllocZeroed
	HookRealloc
	HookFree
	HookMemcpy
	HookMemmove
	HookMemset
	HookMmioRead
	HookMmioWrite
	HookStringFromSlice
	HookStringClone
	HookStringCloneSlice
	HookStringDrop
	HookVecWithCapacity
	HookVecClone
	HookVecIntoArray
	HookVecCopyToArray
	HookVecDrop
	HookArrayIntoVec
	HookArrayCopyToVec
	HookHashSetNew
	HookHashSetWithCapacity
	HookHashSetDrop
	HookHashSetClear
	HookHashSetReserve
	HookHashSetShrinkTo
	HookHashSetLen
	HookHashSetCapacity
	HookHashSetTombstones
	HookHashSetInsert
	HookHashSetReplace
	HookHashSetContains
	HookHashSetGetPtr
	HookHashSetTake
	HookHashSetRemove
	HookHashSetTakeAt
	HookHashSetBucketState
	HookHashSetBucketHash
	HookHashSetIter
	HookHashSetIterNext
	HookHashSetIterNextPtr
	HookHashMapNew
	HookHashMapWithCapacity
	HookHashMapDrop
	HookHashMapClear
	HookHashMapReserve
	HookHashMapShrinkTo
	HookHashMapLen
	HookHashMapCapacity
	HookHashMapInsert
	HookHashMapContains
	HookHashMapGetPtr
	HookHashMapTake
	HookHashMapRemove
	HookHashMapBucketState
	HookHashMapBucketHash
	HookHashMapTakeAt
	HookHashMapIter
	HookHashMapIterNext
	HookRcClone
	HookRcDrop
	HookArcNew
	HookArcClone
	HookArcDrop
	HookArcGet
	HookArcGetMut
	HookArcDowngrade
	HookWeakClone
	HookWeakDrop
	HookWeakUpgrade
	HookArcStrongCount
	HookArcWeakCount
	HookStringAppendSlice
	HookStringAppendBool
	HookStringAppendChar
	HookStringAppendSigned
	HookStringAppendUnsigned
	HookStringAppendF32
	HookStringAppendF64
	HookStringAsSlice
	HookStringTryCopyUtf8
	HookStringAsChars
	HookStrAsChars
	HookF32Rem
	HookF64Rem
	HookMathAbsF64
	HookMathFloorF64
	HookMathCeilF64
	HookMathTruncF64
	HookMathCopySignF64
	HookMathBitIncrementF64
	HookMathBitDecrementF64
	HookMathScaleBF64
	HookMathILogBF64
	HookMathIeeeRemainderF64
	HookMathFmaF64
	HookMathCbrtF64
	HookMathSqrtF64
	HookMathPowF64
	HookMathSinF64
	HookMathCosF64
	HookMathTanF64
	HookMathAsinF64
	HookMathAcosF64
	HookMathAtanF64
	HookMathAtan2F64
	HookMathSinhF64
	HookMathCoshF64
	HookMathTanhF64
	HookMathAsinhF64
	HookMathAcoshF64
	HookMathAtanhF64
	HookMathExpF64
	HookMathLogF64
	HookMathLog10F64
	HookMathLog2F64
	HookMathRoundF64
	HookMathAbsF32
	HookMathFloorF32
	HookMathCeilF32
	HookMathTruncF32
	HookMathCopySignF32
	HookMathBitIncrementF32
	HookMathBitDecrementF32
	HookMathScaleBF32
	HookMathILogBF32
	HookMathIeeeRemainderF32
	HookMathFmaF32
	HookMathCbrtF32
	HookMathSqrtF32
	HookMathPowF32
	HookMathSinF32
	HookMathCosF32
	HookMathTanF32
	HookMathAsinF32
	HookMathAcosF32
	HookMathAtanF32
	HookMathAtan2F32
	HookMathSinhF32
	HookMathCoshF32
	HookMathTanhF32
	HookMathAsinhF32
	HookMathAcoshF32
	HookMathAtanhF32
	HookMathExpF32
	HookMathLogF32
	HookMathLog10F32
	HookMathLog2F32
	HookMathRoundF32
	HookI128Add
	HookU128Add
	HookI128Sub
	HookU128Sub
	HookI128Mul
	HookU128Mul
	HookI128Div
	HookU128Div
	HookI128Rem
	HookU128Rem
	HookI128Eq
	HookU128Eq
	HookI128Cmp
	HookU128Cmp
	HookI128Neg
	HookI128Not
	HookU128Not
	HookI128And
	HookU128And
	HookI128Or
	HookU128Or
	HookI128Xor
	HookU128Xor
	HookI128Shl
	HookU128Shl
	HookI128Shr
	HookU128Shr
	HookSpanCopyTo
	HookSpanFromRawMut
	HookSpanFromRawConst
	HookSpanSliceMut
	HookSpanSliceReadonly
	HookSpanToReadonly
	HookSpanPtrAtMut
	HookSpanPtrAtReadonly
	HookDecimalAdd
	HookDecimalAddSimd
	HookDecimalSub
	HookDecimalSubSimd
	HookDecimalMul
	HookDecimalMulSimd
	HookDecimalDiv
	HookDecimalDivSimd
	HookDecimalRem
	HookDecimalRemSimd
	HookDecimalFma
	HookDecimalFmaSimd
	HookDecimalSum
	HookDecimalDot
	HookDecimalMatMul
	HookClosureEnvAlloc
	HookClosureEnvClone
	HookClosureEnvFree
)

// Hook describes one chic_rt import: its snake_case name and its
// declared WASM parameter/result value types.
type Hook struct {
	ID      HookID
	Name    string
	Params  []wasmcodec.ValueType
	Results []wasmcodec.ValueType
}

const Module = "chic_rt"

// Catalog lists every hook in catalog (enumeration) order; §5's ordering
// guarantee ties runtime-hook import order to this order.
var Catalog = []Hook{
	{ID: HookObjectNew, Name: "object_new", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookPanic, Name: "panic", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookAbort, Name: "abort", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookThrow, Name: "throw", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64}, Results: nil},
	{ID: HookHasPendingException, Name: "has_pending_exception", Params: nil, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookTakePendingException, Name: "take_pending_exception", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAwait, Name: "await", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookYield, Name: "yield", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncCancel, Name: "async_cancel", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncSpawn, Name: "async_spawn", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncSpawnLocal, Name: "async_spawn_local", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncScope, Name: "async_scope", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncTaskHeader, Name: "async_task_header", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncTaskResult, Name: "async_task_result", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncTokenState, Name: "async_token_state", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncTokenNew, Name: "async_token_new", Params: nil, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAsyncTokenCancel, Name: "async_token_cancel", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookBorrowShared, Name: "borrow_shared", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookBorrowUnique, Name: "borrow_unique", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookBorrowRelease, Name: "borrow_release", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookDropResource, Name: "drop_resource", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookDropMissing, Name: "drop_missing", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookTypeSize, Name: "type_size", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookTypeAlign, Name: "type_align", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookTypeMetadata, Name: "type_metadata", Params: []wasmcodec.ValueType{wasmcodec.ValI64, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookTypeDropGlue, Name: "type_drop_glue", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookTypeCloneGlue, Name: "type_clone_glue", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookTypeHashGlue, Name: "type_hash_glue", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookTypeEqGlue, Name: "type_eq_glue", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookDropInvoke, Name: "drop_invoke", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookHashInvoke, Name: "hash_invoke", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI64}},
	{ID: HookEqInvoke, Name: "eq_invoke", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookTraceEnter, Name: "trace_enter", Params: []wasmcodec.ValueType{wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI64, wasmcodec.ValI64, wasmcodec.ValI64}, Results: nil},
	{ID: HookTraceExit, Name: "trace_exit", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: nil},
	{ID: HookTraceFlush, Name: "trace_flush", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookCoverageHit, Name: "coverage_hit", Params: []wasmcodec.ValueType{wasmcodec.ValI64}, Results: nil},
	{ID: HookAlloc, Name: "alloc", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookAllocZeroed, Name: "alloc_zeroed", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookRealloc, Name: "realloc", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookFree, Name: "free", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookMemcpy, Name: "memcpy", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookMemmove, Name: "memmove", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookMemset, Name: "memset", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookMmioRead, Name: "mmio_read", Params: []wasmcodec.ValueType{wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI64}},
	{ID: HookMmioWrite, Name: "mmio_write", Params: []wasmcodec.ValueType{wasmcodec.ValI64, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookStringFromSlice, Name: "string_from_slice", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringClone, Name: "string_clone", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringCloneSlice, Name: "string_clone_slice", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringDrop, Name: "string_drop", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookVecWithCapacity, Name: "vec_with_capacity", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookVecClone, Name: "vec_clone", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookVecIntoArray, Name: "vec_into_array", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookVecCopyToArray, Name: "vec_copy_to_array", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookVecDrop, Name: "vec_drop", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookArrayIntoVec, Name: "array_into_vec", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookArrayCopyToVec, Name: "array_copy_to_vec", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetNew, Name: "hashset_new", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetWithCapacity, Name: "hashset_with_capacity", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetDrop, Name: "hashset_drop", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookHashSetClear, Name: "hashset_clear", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetReserve, Name: "hashset_reserve", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetShrinkTo, Name: "hashset_shrink_to", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetLen, Name: "hashset_len", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetCapacity, Name: "hashset_capacity", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetTombstones, Name: "hashset_tombstones", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetInsert, Name: "hashset_insert", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetReplace, Name: "hashset_replace", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetContains, Name: "hashset_contains", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetGetPtr, Name: "hashset_get_ptr", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetTake, Name: "hashset_take", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetRemove, Name: "hashset_remove", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetTakeAt, Name: "hashset_take_at", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetBucketState, Name: "hashset_bucket_state", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetBucketHash, Name: "hashset_bucket_hash", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI64}},
	{ID: HookHashSetIter, Name: "hashset_iter", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetIterNext, Name: "hashset_iter_next", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashSetIterNextPtr, Name: "hashset_iter_next_ptr", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapNew, Name: "hashmap_new", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapWithCapacity, Name: "hashmap_with_capacity", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapDrop, Name: "hashmap_drop", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookHashMapClear, Name: "hashmap_clear", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapReserve, Name: "hashmap_reserve", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapShrinkTo, Name: "hashmap_shrink_to", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapLen, Name: "hashmap_len", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapCapacity, Name: "hashmap_capacity", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapInsert, Name: "hashmap_insert", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapContains, Name: "hashmap_contains", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapGetPtr, Name: "hashmap_get_ptr", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapTake, Name: "hashmap_take", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapRemove, Name: "hashmap_remove", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapBucketState, Name: "hashmap_bucket_state", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapBucketHash, Name: "hashmap_bucket_hash", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI64}},
	{ID: HookHashMapTakeAt, Name: "hashmap_take_at", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapIter, Name: "hashmap_iter", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookHashMapIterNext, Name: "hashmap_iter_next", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookRcClone, Name: "rc_clone", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookRcDrop, Name: "rc_drop", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookArcNew, Name: "arc_new", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookArcClone, Name: "arc_clone", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookArcDrop, Name: "arc_drop", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookArcGet, Name: "arc_get", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookArcGetMut, Name: "arc_get_mut", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookArcDowngrade, Name: "arc_downgrade", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookWeakClone, Name: "weak_clone", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookWeakDrop, Name: "weak_drop", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: nil},
	{ID: HookWeakUpgrade, Name: "weak_upgrade", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookArcStrongCount, Name: "arc_strong_count", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookArcWeakCount, Name: "arc_weak_count", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAppendSlice, Name: "string_append_slice", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAppendBool, Name: "string_append_bool", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAppendChar, Name: "string_append_char", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAppendSigned, Name: "string_append_signed", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAppendUnsigned, Name: "string_append_unsigned", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAppendF32, Name: "string_append_f32", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValF32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAppendF64, Name: "string_append_f64", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValF64, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAsSlice, Name: "string_as_slice", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}},
	{ID: HookStringTryCopyUtf8, Name: "string_try_copy_utf8", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookStringAsChars, Name: "string_as_chars", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}},
	{ID: HookStrAsChars, Name: "str_as_chars", Params: []wasmcodec.ValueType{wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}},
	{ID: HookF32Rem, Name: "f32_rem", Params: []wasmcodec.ValueType{wasmcodec.ValF32, wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookF64Rem, Name: "f64_rem", Params: []wasmcodec.ValueType{wasmcodec.ValF64, wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAbsF64, Name: "math_abs_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathFloorF64, Name: "math_floor_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathCeilF64, Name: "math_ceil_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathTruncF64, Name: "math_trunc_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathCopySignF64, Name: "math_copy_sign_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64, wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathBitIncrementF64, Name: "math_bit_increment_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathBitDecrementF64, Name: "math_bit_decrement_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathScaleBF64, Name: "math_scale_b_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathILogBF64, Name: "math_ilogb_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookMathIeeeRemainderF64, Name: "math_ieee_remainder_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64, wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathFmaF64, Name: "math_fma_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64, wasmcodec.ValF64, wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathCbrtF64, Name: "math_cbrt_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathSqrtF64, Name: "math_sqrt_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathPowF64, Name: "math_pow_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64, wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathSinF64, Name: "math_sin_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathCosF64, Name: "math_cos_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathTanF64, Name: "math_tan_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAsinF64, Name: "math_asin_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAcosF64, Name: "math_acos_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAtanF64, Name: "math_atan_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAtan2F64, Name: "math_atan2_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64, wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathSinhF64, Name: "math_sinh_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathCoshF64, Name: "math_cosh_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathTanhF64, Name: "math_tanh_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAsinhF64, Name: "math_asinh_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAcoshF64, Name: "math_acosh_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAtanhF64, Name: "math_atanh_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathExpF64, Name: "math_exp_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathLogF64, Name: "math_log_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathLog10F64, Name: "math_log10_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathLog2F64, Name: "math_log2_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathRoundF64, Name: "math_round_f64", Params: []wasmcodec.ValueType{wasmcodec.ValF64, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValF64}},
	{ID: HookMathAbsF32, Name: "math_abs_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathFloorF32, Name: "math_floor_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathCeilF32, Name: "math_ceil_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathTruncF32, Name: "math_trunc_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathCopySignF32, Name: "math_copy_sign_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32, wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathBitIncrementF32, Name: "math_bit_increment_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathBitDecrementF32, Name: "math_bit_decrement_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathScaleBF32, Name: "math_scale_b_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathILogBF32, Name: "math_ilogb_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookMathIeeeRemainderF32, Name: "math_ieee_remainder_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32, wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathFmaF32, Name: "math_fma_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32, wasmcodec.ValF32, wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathCbrtF32, Name: "math_cbrt_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathSqrtF32, Name: "math_sqrt_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathPowF32, Name: "math_pow_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32, wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathSinF32, Name: "math_sin_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathCosF32, Name: "math_cos_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathTanF32, Name: "math_tan_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathAsinF32, Name: "math_asin_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathAcosF32, Name: "math_acos_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathAtanF32, Name: "math_atan_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathAtan2F32, Name: "math_atan2_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32, wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathSinhF32, Name: "math_sinh_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathCoshF32, Name: "math_cosh_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathTanhF32, Name: "math_tanh_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathAsinhF32, Name: "math_asinh_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathAcoshF32, Name: "math_acosh_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathAtanhF32, Name: "math_atanh_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathExpF32, Name: "math_exp_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathLogF32, Name: "math_log_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathLog10F32, Name: "math_log10_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathLog2F32, Name: "math_log2_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookMathRoundF32, Name: "math_round_f32", Params: []wasmcodec.ValueType{wasmcodec.ValF32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValF32}},
	{ID: HookI128Add, Name: "i128_add", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Add, Name: "u128_add", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Sub, Name: "i128_sub", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Sub, Name: "u128_sub", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Mul, Name: "i128_mul", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Mul, Name: "u128_mul", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Div, Name: "i128_div", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Div, Name: "u128_div", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Rem, Name: "i128_rem", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Rem, Name: "u128_rem", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Eq, Name: "i128_eq", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookU128Eq, Name: "u128_eq", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookI128Cmp, Name: "i128_cmp", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookU128Cmp, Name: "u128_cmp", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookI128Neg, Name: "i128_neg", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Not, Name: "i128_not", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Not, Name: "u128_not", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128And, Name: "i128_and", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128And, Name: "u128_and", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Or, Name: "i128_or", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Or, Name: "u128_or", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Xor, Name: "i128_xor", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Xor, Name: "u128_xor", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Shl, Name: "i128_shl", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Shl, Name: "u128_shl", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookI128Shr, Name: "i128_shr", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookU128Shr, Name: "u128_shr", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookSpanCopyTo, Name: "span_copy_to", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookSpanFromRawMut, Name: "span_from_raw_mut", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookSpanFromRawConst, Name: "span_from_raw_const", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookSpanSliceMut, Name: "span_slice_mut", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookSpanSliceReadonly, Name: "span_slice_readonly", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookSpanToReadonly, Name: "span_to_readonly", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookSpanPtrAtMut, Name: "span_ptr_at_mut", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookSpanPtrAtReadonly, Name: "span_ptr_at_readonly", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookDecimalAdd, Name: "decimal_add_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalAddSimd, Name: "decimal_add_simd_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalSub, Name: "decimal_sub_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalSubSimd, Name: "decimal_sub_simd_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalMul, Name: "decimal_mul_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalMulSimd, Name: "decimal_mul_simd_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalDiv, Name: "decimal_div_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalDivSimd, Name: "decimal_div_simd_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalRem, Name: "decimal_rem_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalRemSimd, Name: "decimal_rem_simd_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalFma, Name: "decimal_fma_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalFmaSimd, Name: "decimal_fma_simd_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalSum, Name: "decimal_sum_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalDot, Name: "decimal_dot_out", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
	{ID: HookDecimalMatMul, Name: "decimal_matmul", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookClosureEnvAlloc, Name: "closure_env_alloc", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookClosureEnvClone, Name: "closure_env_clone", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: []wasmcodec.ValueType{wasmcodec.ValI32}},
	{ID: HookClosureEnvFree, Name: "closure_env_free", Params: []wasmcodec.ValueType{wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI32}, Results: nil},
}

var byName map[string]*Hook
var byID map[HookID]*Hook

func init() {
	byName = make(map[string]*Hook, len(Catalog))
	byID = make(map[HookID]*Hook, len(Catalog))
	for i := range Catalog {
		h := &Catalog[i]
		byName[h.Name] = h
		byID[h.ID] = h
	}
}

// ByName looks up a hook by its snake_case import name.
func ByName(name string) (*Hook, bool) {
	h, ok := byName[name]
	return h, ok
}

// ByID looks up a hook by its HookID.
func ByID(id HookID) (*Hook, bool) {
	h, ok := byID[id]
	return h, ok
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrBucketCountTooSmall   = InvalidError("bucket count too small")
	ErrCannotShrinkFile      = InvalidError("cannot shrink file below used size")
	ErrFileTooSmall          = InvalidError("file is too small for declared buckets")
	ErrInvalidAllocatorState = ProcessError("allocator state exceeds file capacity")
	ErrInvalidKeyLength      = InvalidError("key length is invalid")
	ErrInvalidRecordSize     = InvalidError("record size is invalid")
	ErrKeyNotFound           = NotFoundError("key not found")
	ErrNotFoundConfigFile    = NotFoundError("config file is not found")
	ErrNotInitialised        = InvalidError("not initialised")
	ErrOutOfRange            = InvalidError("offset is out of mapped range")
	ErrValueTooLarge         = InvalidError("value size exceeds representable range")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mmfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/bitmark-inc/chaindb/fault"
)

// File - a growable memory mapped file
//
// the caller is the single writer; readers must not span a Resize
// with a stale Handle
type File struct {
	name       string
	file       *os.File
	data       mmap.MMap
	capacity   uint64
	generation uint64
}

// Create - initialise a new backing file of the given capacity
//
// any existing file of the same name is truncated
func Create(name string, capacity uint64) (*File, error) {
	file, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if nil != err {
		return nil, err
	}
	return mapFile(name, file, capacity)
}

// Open - attach to an existing backing file
//
// capacity is taken from the current file size
func Open(name string) (*File, error) {
	file, err := os.OpenFile(name, os.O_RDWR, 0600)
	if nil != err {
		return nil, err
	}
	info, err := file.Stat()
	if nil != err {
		file.Close()
		return nil, err
	}
	return mapFile(name, file, uint64(info.Size()))
}

// internal routine to size and map the file
func mapFile(name string, file *os.File, capacity uint64) (*File, error) {
	err := file.Truncate(int64(capacity))
	if nil != err {
		file.Close()
		return nil, err
	}
	data, err := mmap.Map(file, mmap.RDWR, 0)
	if nil != err {
		file.Close()
		return nil, err
	}
	f := &File{
		name:     name,
		file:     file,
		data:     data,
		capacity: capacity,
	}
	return f, nil
}

// Name - the backing file name
func (f *File) Name() string {
	return f.name
}

// Capacity - current mapped capacity in bytes
func (f *File) Capacity() uint64 {
	return f.capacity
}

// Resize - grow the backing file and remap it
//
// all previously issued handles become invalid; a failure here is
// unrecoverable for this store instance
func (f *File) Resize(capacity uint64) error {
	if capacity < f.capacity {
		return fault.ErrCannotShrinkFile
	}
	if capacity == f.capacity {
		return nil
	}

	err := f.data.Flush()
	if nil != err {
		return err
	}
	err = f.data.Unmap()
	if nil != err {
		return err
	}
	f.data = nil

	err = f.file.Truncate(int64(capacity))
	if nil != err {
		return err
	}

	data, err := mmap.Map(f.file, mmap.RDWR, 0)
	if nil != err {
		return err
	}

	f.data = data
	f.capacity = capacity
	f.generation += 1
	return nil
}

// Access - obtain a handle valid until the next Resize
func (f *File) Access() Handle {
	return Handle{
		file:       f,
		generation: f.generation,
	}
}

// Flush - push mapped pages to the backing file
func (f *File) Flush() error {
	return f.data.Flush()
}

// Stop - flush, unmap and close
//
// the File must not be used afterwards
func (f *File) Stop() error {
	if nil == f.data {
		return fault.ErrNotInitialised
	}
	err := f.data.Flush()
	if nil != err {
		f.data.Unmap()
		f.file.Close()
		return err
	}
	err = f.data.Unmap()
	f.data = nil
	if nil != err {
		f.file.Close()
		return err
	}
	return f.file.Close()
}

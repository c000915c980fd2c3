/*
 * source.go, part of trajectory-parser
 *
 * Copyright 2026 The trajectory-parser authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

package dump

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

//headLen is how many bytes from the start of the file go into the fingerprint.
const headLen = 4096

//source is the file a Parser reads from. Compressed dumps can't be seeked into,
//so they are inflated once into a spool file and the spool is read instead.
type source struct {
	file     *os.File
	filename string
	spool    string //path of the spool file, empty if the dump is read directly
	head     int    //bytes covered by sum
	sum      uint64
}

//compressionFromName deduces the compression from the file extension.
func compressionFromName(fname string) string {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	}
	return CompressionNone
}

//zstdql adapts *zstd.Decoder, whose Close returns nothing, to io.ReadCloser.
type zstdql struct {
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.Decoder.Close()
	return nil
}

//openSource opens fname for reading, inflating it first if needed, and takes the
//fingerprint of its head. Every failure is an OpenError.
func openSource(fname string, O *Options) (*source, error) {
	S := &source{filename: fname}
	f, err := os.Open(fname)
	if err != nil {
		return nil, NewError(OpenError, fname, -1, "unable to open file", "os.Open", "openSource").Wrap(err)
	}
	kind := O.Compression()
	if kind == CompressionAuto {
		kind = compressionFromName(fname)
	}
	var dec func(io.Reader) (io.ReadCloser, error)
	switch kind {
	case CompressionGzip:
		dec = func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }
	case CompressionZstd:
		dec = func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zstdql{d}, nil
		}
	case CompressionLZ4:
		dec = func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(lz4.NewReader(r)), nil }
	default:
		S.file = f
	}
	if dec != nil {
		O.Logger().Printf("Inflating %s (%s) into a spool file in %q", fname, kind, O.SpoolDir())
		S.file, S.spool, err = spool(f, dec, O.SpoolDir())
		f.Close()
		if err != nil {
			return nil, NewError(OpenError, fname, -1, "unable to inflate "+kind+" file", "spool", "openSource").Wrap(err)
		}
	}
	if S.head, S.sum, err = fingerprint(S.file, headLen); err != nil {
		S.close()
		return nil, NewError(OpenError, fname, 0, "unable to read file head", "fingerprint", "openSource").Wrap(err)
	}
	return S, nil
}

//spool copies the inflated content of f into a new temporary file in dir and
//returns it positioned at its start.
func spool(f *os.File, dec func(io.Reader) (io.ReadCloser, error), dir string) (*os.File, string, error) {
	r, err := dec(bufio.NewReader(f))
	if err != nil {
		return nil, "", err
	}
	defer r.Close()
	tmp, err := os.CreateTemp(dir, "lmpdump-*.spool")
	if err != nil {
		return nil, "", err
	}
	fail := func(err error) (*os.File, string, error) {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, "", err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		return fail(err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fail(err)
	}
	return tmp, tmp.Name(), nil
}

//fingerprint hashes up to n bytes from the start of f. It doesn't move the
//file offset.
func fingerprint(f *os.File, n int) (int, uint64, error) {
	buf := make([]byte, n)
	read, err := f.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, 0, err
	}
	return read, xxhash.Sum64(buf[:read]), nil
}

//changed returns true if the bytes that were fingerprinted when the source was
//opened are no longer the same.
func (S *source) changed() (bool, error) {
	if S.spool != "" {
		return false, nil
	}
	n, sum, err := fingerprint(S.file, S.head)
	if err != nil {
		return false, err
	}
	return n != S.head || sum != S.sum, nil
}

func (S *source) close() error {
	if S.file == nil {
		return nil
	}
	err := S.file.Close()
	S.file = nil
	if S.spool != "" {
		if rerr := os.Remove(S.spool); err == nil {
			err = rerr
		}
	}
	return err
}

package network

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/warpzone/snapshot"
)

// EncodePackages serializes one tick's packages for a client: msgpack with named fields, lz4 framed
func EncodePackages(pkgs []snapshot.Package) ([]byte, error) {
	raw, err := msgpack.Marshal(pkgs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal packages: %w", err)
	}

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to compress packages: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress packages: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePackages reverses EncodePackages
func DecodePackages(data []byte) ([]snapshot.Package, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress packages: %w", err)
	}
	var pkgs []snapshot.Package
	if err := msgpack.Unmarshal(raw, &pkgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal packages: %w", err)
	}
	return pkgs, nil
}

package ueformat

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReadHeader_Valid(t *testing.T) {
	data := container(IdentifierModel, MaxVersion, "SM_Chair", nil, false)
	sr := &streamReader{r: bytes.NewReader(data), limits: defaultLimits()}
	h, err := readHeader(sr)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	if h.Identifier != IdentifierModel {
		t.Errorf("identifier = %q", h.Identifier)
	}
	if h.Version != MaxVersion {
		t.Errorf("version = %d", h.Version)
	}
	if h.ObjectName != "SM_Chair" {
		t.Errorf("object name = %q", h.ObjectName)
	}
	if h.IsCompressed {
		t.Error("IsCompressed = true for uncompressed fixture")
	}
}

func TestReadHeader_CompressionFields(t *testing.T) {
	payload := sampleModelPayload()
	data := container(IdentifierModel, MinVersion, "SM_Crate", payload, true)
	sr := &streamReader{r: bytes.NewReader(data), limits: defaultLimits()}
	h, err := readHeader(sr)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	if !h.IsCompressed {
		t.Fatal("IsCompressed = false")
	}
	if h.CompressionType != CompressionZSTD {
		t.Errorf("compression type = %q", h.CompressionType)
	}
	if int(h.UncompressedSize) != len(payload) {
		t.Errorf("uncompressed size = %d, want %d", h.UncompressedSize, len(payload))
	}
	if h.CompressedSize <= 0 {
		t.Errorf("compressed size = %d", h.CompressedSize)
	}
}

func TestReadHeader_BadMagic(t *testing.T) {
	data := container(IdentifierModel, MinVersion, "SM_Crate", nil, false)
	for i := 0; i < len(Magic); i++ {
		corrupted := append([]byte(nil), data...)
		corrupted[i] ^= 0xFF

		// Supply only the magic bytes: if the reader touched any later
		// header field it would surface an io error, not ErrBadMagic.
		sr := &streamReader{r: bytes.NewReader(corrupted[:len(Magic)]), limits: defaultLimits()}
		_, err := readHeader(sr)
		if !errors.Is(err, ErrBadMagic) {
			t.Errorf("byte %d: err = %v, want ErrBadMagic", i, err)
		}
	}
}

func TestReadHeader_VersionWindow(t *testing.T) {
	tests := []struct {
		version uint8
		wantErr bool
	}{
		{VersionSerializeBinormalSign, true},
		{VersionAddMultipleVertexColors, true},
		{VersionAddConvexCollisionGeom, true},
		{VersionLevelOfDetailRestructure, false},
		{VersionSerializeVirtualBones, false},
		{MaxVersion + 1, true},
	}
	for _, tt := range tests {
		data := container(IdentifierModel, tt.version, "SM_Crate", nil, false)
		sr := &streamReader{r: bytes.NewReader(data), limits: defaultLimits()}
		_, err := readHeader(sr)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedVersion) {
				t.Errorf("version %d: err = %v, want ErrUnsupportedVersion", tt.version, err)
			}
		} else if err != nil {
			t.Errorf("version %d: unexpected error %v", tt.version, err)
		}
	}
}

func TestReadHeader_TruncatedStream(t *testing.T) {
	data := container(IdentifierModel, MinVersion, "SM_Crate", sampleModelPayload(), true)
	// Cut inside the object name string.
	sr := &streamReader{r: bytes.NewReader(data[:len(Magic)+4+len(IdentifierModel)+1+6]), limits: defaultLimits()}
	_, err := readHeader(sr)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestStreamReader_NegativeStringLength(t *testing.T) {
	var w wbuf
	w.i32(-5)
	sr := &streamReader{r: bytes.NewReader(w.Bytes()), limits: defaultLimits()}
	_, err := sr.readString()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestStreamReader_StringLengthLimit(t *testing.T) {
	var w wbuf
	w.str("LONGNAME")
	limits := defaultLimits()
	limits.MaxStringLen = 4
	sr := &streamReader{r: bytes.NewReader(w.Bytes()), limits: limits}
	_, err := sr.readString()
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("err = %v, want ErrLimitExceeded", err)
	}
}

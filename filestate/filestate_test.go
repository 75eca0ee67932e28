package filestate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileType(t *testing.T) {
	for _, ft := range []FileType{Normal, Compact, Compression, S3} {
		got, err := ParseFileType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, got)
	}
	got, err := ParseFileType(" compression ")
	require.NoError(t, err)
	assert.Equal(t, Compression, got)

	_, err = ParseFileType("erasure")
	assert.ErrorIs(t, err, ErrUnknownFileType)
	assert.Equal(t, "FileType(42)", FileType(42).String())
}

func TestValidate(t *testing.T) {
	cs := &CompressionState{
		Codec:            "zstd",
		BufferSize:       4,
		OriginalLength:   10,
		CompressedLength: 9,
		OriginalPos:      []int64{0, 4, 8},
		CompressedPos:    []int64{0, 3, 6},
	}
	valid := []*FileState{
		NewNormal("/a"),
		NewCompact("/a", "/container", 0, 10),
		NewCompression("/a", cs),
		NewS3("/a", "bucket", ""),
	}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), s.Type.String())
	}

	invalid := []*FileState{
		{Path: "/a", Type: Compact},
		NewCompact("/a", "", 0, 10),
		NewCompact("/a", "/container", -1, 10),
		{Path: "/a", Type: Compression},
		NewCompression("/a", &CompressionState{Codec: "zstd", OriginalLength: 3}),
		NewCompression("/a", &CompressionState{Codec: "zstd", OriginalPos: []int64{0}, CompressedPos: []int64{}}),
		NewCompression("/a", &CompressionState{Codec: "zstd", OriginalLength: 8, CompressedLength: 8,
			OriginalPos: []int64{0, 6, 4}, CompressedPos: []int64{0, 2, 4}}),
		NewCompression("/a", &CompressionState{Codec: "zstd", OriginalLength: -1}),
		NewCompression("/a", &CompressionState{Codec: "zstd", CompressedLength: -5}),
		NewS3("/a", "", "k"),
	}
	for _, s := range invalid {
		assert.ErrorIs(t, s.Validate(), ErrInvalidState, s.Type.String())
	}
	assert.ErrorIs(t, (&FileState{Type: FileType(9)}).Validate(), ErrUnknownFileType)
}

func TestChunk(t *testing.T) {
	cs := &CompressionState{
		OriginalLength:   10,
		CompressedLength: 7,
		OriginalPos:      []int64{0, 4, 8},
		CompressedPos:    []int64{0, 3, 5},
	}
	ostart, oend, c0, c1 := cs.Chunk(1)
	assert.Equal(t, []int64{4, 8, 3, 5}, []int64{ostart, oend, c0, c1})
	ostart, oend, c0, c1 = cs.Chunk(2)
	assert.Equal(t, []int64{8, 10, 5, 7}, []int64{ostart, oend, c0, c1})
	assert.Equal(t, 3, cs.ChunkCount())
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "data/a.txt", (&S3State{Bucket: "b"}).ObjectKey("/data/a.txt"))
	assert.Equal(t, "custom", (&S3State{Bucket: "b", Key: "custom"}).ObjectKey("/data/a.txt"))
}

func TestCodecKeepsSections(t *testing.T) {
	in := NewCompact("/small/1", "/containers/c0", 128, 64)
	in.Stage = Processing
	in.Checksum = 0xdeadbeef

	b, err := Marshal(in)
	require.NoError(t, err)
	out, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Nil(t, out.Compression)

	_, err = Unmarshal([]byte{0xc1})
	assert.Error(t, err)
}

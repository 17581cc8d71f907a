package image

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	stdimage "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenith-gallery/core/internal/models"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, stdimage.NewRGBA(stdimage.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

// declaredSizePNG returns a tiny PNG whose header claims w x h pixels.
func declaredSizePNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := encodePNG(t, 1, 1)
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestDeviceClass(t *testing.T) {
	assert.Equal(t, models.TipoMobile, DeviceClass(1))
	assert.Equal(t, models.TipoMobile, DeviceClass(767))
	assert.Equal(t, models.TipoDesktop, DeviceClass(768))
	assert.Equal(t, models.TipoDesktop, DeviceClass(3840))
}

func TestDownloadFilenames(t *testing.T) {
	id := "65f1a2b3c4d5e6f708192a3b"

	assert.Equal(t, "65f1a2", ShortID(id))
	assert.Equal(t, "zenith_65f1a2_HD.png", OriginalFilename(id, "png"))
	assert.Equal(t, "zenith_65f1a2.jpg", ResizedFilename(id, "jpg"))
	assert.Equal(t, "a", ShortID("abcdefg"))
}

func TestHalveImage(t *testing.T) {
	t.Run("png stays png", func(t *testing.T) {
		out, err := HalveImage(encodePNG(t, 10, 7))
		require.NoError(t, err)
		assert.Equal(t, 5, out.Width)
		assert.Equal(t, 3, out.Height)
		assert.Equal(t, "png", out.Ext)

		cfg, format, err := stdimage.DecodeConfig(bytes.NewReader(out.Data))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 5, cfg.Width)
		assert.Equal(t, 3, cfg.Height)
	})

	t.Run("jpeg and minimum size", func(t *testing.T) {
		out, err := HalveImage(encodeJPEG(t, 1, 3))
		require.NoError(t, err)
		assert.Equal(t, 1, out.Width)
		assert.Equal(t, 1, out.Height)
		assert.Equal(t, "jpg", out.Ext)
		assert.Equal(t, "image/jpeg", out.ContentType)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := HalveImage([]byte("not an image"))
		assert.Error(t, err)
	})
}

func TestStorageKey(t *testing.T) {
	key, err := StorageKey("Foto Playa.PNG", "png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Len(t, key, 21+len(".png"))

	key, err = StorageKey("sin-extension", "jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	key, err = StorageKey("raro.j p g", "webp")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".webp"))

	other, err := StorageKey("Foto Playa.PNG", "png")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestComputeBlurHash(t *testing.T) {
	hash, err := ComputeBlurHash(encodePNG(t, 120, 80))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	_, err = ComputeBlurHash([]byte("nope"))
	assert.Error(t, err)
}

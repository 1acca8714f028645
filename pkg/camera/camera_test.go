/*
 * Copyright 2025 RH360 SpA.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package camera

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rh360/facekiosk/pkg/logger"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer

	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))

	return buf.Bytes()
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{StreamURL: "rtsp://camera.local:8554/stream"}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, time.Duration(cfg.ConnectTimeout))
	assert.Equal(t, 90, cfg.JPEGQuality)
	assert.Equal(t, 1920, cfg.MaxWidth)
	assert.Equal(t, 1080, cfg.MaxHeight)
}

func TestConfigValidate_MissingURL(t *testing.T) {
	cfg := Config{}

	assert.ErrorIs(t, cfg.Validate(), errStreamURLRequired)
}

func TestNormalizeJPEG_CapsOversizedFrames(t *testing.T) {
	src := encodeTestJPEG(t, 640, 480)

	out, err := normalizeJPEG(src, 320, 240, 90)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, 320, decoded.Bounds().Dx())
	assert.Equal(t, 240, decoded.Bounds().Dy())
}

func TestNormalizeJPEG_PreservesAspectRatio(t *testing.T) {
	src := encodeTestJPEG(t, 800, 400)

	out, err := normalizeJPEG(src, 400, 400, 90)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, 400, decoded.Bounds().Dx())
	assert.Equal(t, 200, decoded.Bounds().Dy())
}

func TestNormalizeJPEG_KeepsSmallFrames(t *testing.T) {
	src := encodeTestJPEG(t, 100, 80)

	out, err := normalizeJPEG(src, 1920, 1080, 90)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 80, decoded.Bounds().Dy())
}

func TestNormalizeJPEG_RejectsGarbage(t *testing.T) {
	_, err := normalizeJPEG([]byte("not a jpeg"), 1920, 1080, 90)

	assert.Error(t, err)
}

func TestDataURL(t *testing.T) {
	url := DataURL([]byte{0xFF, 0xD8, 0xFF})

	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func newTestSource(t *testing.T, streamURL string) *RTSPSource {
	t.Helper()

	cfg := Config{StreamURL: streamURL}
	require.NoError(t, cfg.Validate())

	return NewRTSPSource(cfg, logger.NewTestLogger())
}

func TestRTSPSource_CaptureBeforeFrame(t *testing.T) {
	source := newTestSource(t, "rtsp://camera.local:8554/stream")

	_, err := source.Capture(context.Background())

	assert.ErrorIs(t, err, ErrNoFrame)
}

func TestRTSPSource_CaptureStoredFrame(t *testing.T) {
	source := newTestSource(t, "rtsp://camera.local:8554/stream")
	source.storeFrame(encodeTestJPEG(t, 320, 240))

	out, err := source.Capture(context.Background())
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, decoded.Bounds().Dx())
}

func TestRTSPSource_WaitReady(t *testing.T) {
	source := newTestSource(t, "rtsp://camera.local:8554/stream")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := source.WaitReady(ctx)
	require.ErrorIs(t, err, ErrNoFrame)

	source.storeFrame(encodeTestJPEG(t, 16, 16))

	require.NoError(t, source.WaitReady(context.Background()))
}

func TestRTSPSource_StartInvalidURL(t *testing.T) {
	source := newTestSource(t, "://bad")

	err := source.Start(context.Background())

	assert.ErrorIs(t, err, ErrCameraUnavailable)
}

func TestRTSPSource_RetryAfterFailedStart(t *testing.T) {
	source := newTestSource(t, "://bad")

	err := source.Start(context.Background())
	require.ErrorIs(t, err, ErrCameraUnavailable)

	// a failed attempt must not leave the source stuck busy
	err = source.Start(context.Background())
	assert.ErrorIs(t, err, ErrCameraUnavailable)
	assert.NotErrorIs(t, err, ErrBusy)
}

func TestRTSPSource_StopIsIdempotent(t *testing.T) {
	source := newTestSource(t, "rtsp://camera.local:8554/stream")

	source.Stop()
	source.Stop()
}

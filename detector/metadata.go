package detector

import "deepcheck/common/models"

// Fabricated media properties. The demo has no decoder, so formats and
// dimensions are drawn from small plausible sets.
var (
	imageFormats = []string{"jpeg", "png", "webp"}
	videoFormats = []string{"mp4", "webm", "mov"}
	audioFormats = []string{"mp3", "wav", "ogg"}

	mediaSizes = []struct{ W, H int }{
		{640, 480},
		{1280, 720},
		{1920, 1080},
		{3840, 2160},
	}

	sampleRates = []int{22050, 44100, 48000}
)

func (e *Engine) imageMetadata() models.MediaMetadata {
	size := mediaSizes[e.rng.Intn(len(mediaSizes))]
	return models.MediaMetadata{
		MediaType: models.MediaTypeImage,
		Format:    imageFormats[e.rng.Intn(len(imageFormats))],
		Width:     size.W,
		Height:    size.H,
	}
}

func (e *Engine) videoMetadata(frameCount int) models.MediaMetadata {
	size := mediaSizes[e.rng.Intn(len(mediaSizes))]
	return models.MediaMetadata{
		MediaType:  models.MediaTypeVideo,
		Format:     videoFormats[e.rng.Intn(len(videoFormats))],
		Width:      size.W,
		Height:     size.H,
		DurationMs: (4 + e.rng.Intn(27)) * 1000,
		FrameCount: frameCount,
	}
}

func (e *Engine) audioMetadata() models.MediaMetadata {
	return models.MediaMetadata{
		MediaType:  models.MediaTypeAudio,
		Format:     audioFormats[e.rng.Intn(len(audioFormats))],
		DurationMs: (5 + e.rng.Intn(56)) * 1000,
		SampleRate: sampleRates[e.rng.Intn(len(sampleRates))],
		Channels:   1 + e.rng.Intn(2),
	}
}

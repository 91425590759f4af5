// Package domain holds the pure format-selection logic.
package domain

import (
	"fmt"
	"sort"

	"github.com/lightbolt/backend/internal/music/models"
)

// maxBitrate caps the average bitrate of streamable candidates, in kbps.
// Higher-bitrate formats buffer poorly over the proxy.
const maxBitrate = 160

// extRank orders container extensions by streaming preference. Lower is
// better. Unlisted extensions never survive the filter.
var extRank = map[string]int{
	"m4a":  0,
	"mp3":  1,
	"webm": 2,
}

// Selected is the chosen candidate together with its normalized descriptor.
type Selected struct {
	URL    string
	Format models.Format
}

// SelectFormat picks the single best audio-only format out of the candidate
// set. Candidates must carry an audio codec, no video codec, a known container
// extension and a bitrate under the streaming cap. Survivors are ranked by
// extension preference (m4a, then mp3, then webm) and by bitrate descending
// within the same extension.
func SelectFormat(formats []models.CandidateFormat) (Selected, error) {
	audio := make([]models.CandidateFormat, 0, len(formats))
	for _, f := range formats {
		if f.ACodec == "" || f.ACodec == "none" {
			continue
		}
		if f.VCodec != "" && f.VCodec != "none" {
			continue
		}
		if _, ok := extRank[f.Ext]; !ok {
			continue
		}
		if f.ABR >= maxBitrate {
			continue
		}
		audio = append(audio, f)
	}

	if len(audio) == 0 {
		return Selected{}, models.ErrNoSuitableFormat
	}

	sort.SliceStable(audio, func(i, j int) bool {
		if audio[i].Ext != audio[j].Ext {
			return extRank[audio[i].Ext] < extRank[audio[j].Ext]
		}
		return audio[i].ABR > audio[j].ABR
	})

	best := audio[0]
	if best.URL == "" {
		return Selected{}, models.ErrNoStreamURL
	}

	ext := best.Ext
	if ext == "" {
		ext = "mp3"
	}
	abr := int(best.ABR)
	if abr == 0 {
		abr = 128
	}
	acodec := best.ACodec
	if acodec == "" {
		acodec = "mp3"
	}

	return Selected{
		URL: best.URL,
		Format: models.Format{
			Ext:    ext,
			ABR:    abr,
			ACodec: acodec,
			MIME:   fmt.Sprintf("audio/%s", ext),
		},
	}, nil
}

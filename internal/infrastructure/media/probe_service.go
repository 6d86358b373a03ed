package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// FFProbeService implements domain.MediaProbeService by shelling out
// to ffprobe. Callers treat a probe failure as duration 0 and log it;
// this service only reports the failure.
type FFProbeService struct {
	binary string
}

// NewFFProbeService creates a new ffprobe-backed media probe
func NewFFProbeService(binary string) domain.MediaProbeService {
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProbeService{binary: binary}
}

// ProbeDuration implements domain.MediaProbeService. The returned
// duration is in minutes, rounded to two decimal places.
func (s *FFProbeService) ProbeDuration(ctx context.Context, fileURL string) (float64, error) {
	cmd := exec.CommandContext(ctx, s.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		fileURL,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", fileURL, err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output for %s: %w", fileURL, err)
	}

	return domain.RoundDuration(seconds / 60), nil
}

var _ domain.MediaProbeService = (*FFProbeService)(nil)

package cli

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestVersionString(t *testing.T) {
	assert.Equal(t, "dev", versionString("dev", ""))
	assert.Equal(t, "1.0.0 (abc1234)", versionString("1.0.0", "abc1234def"))
	assert.Equal(t, "1.0.0 (abc)", versionString("1.0.0", "abc"))
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)

	PrintBanner(logger, options.Program{}, "dev", "abc1234def", "2024-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}

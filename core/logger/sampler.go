package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// ratioSampler admits num out of every den calls to Allow.
// A zero numerator disables sampling entirely, den<=num admits everything.
type ratioSampler struct {
	num     atomic.Int64
	den     atomic.Int64
	counter atomic.Int64
}

func newRatioSampler(num, den int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(num, den)
	return s
}

func (s *ratioSampler) Set(num, den int) {
	if num < 0 {
		num = 0
	}
	if den < 1 {
		den = 1
	}
	s.num.Store(int64(num))
	s.den.Store(int64(den))
}

func (s *ratioSampler) Allow() bool {
	num := s.num.Load()
	if num == 0 {
		return false
	}
	den := s.den.Load()
	if num >= den {
		return true
	}
	n := s.counter.Add(1) - 1
	return n%den < num
}

// parseRatioSpec reads specs like "1/50", "1:100" or a bare count "200"
// (meaning 1 out of 200). Malformed input falls back to 1/50.
func parseRatioSpec(spec string) (int, int) {
	const defNum, defDen = 1, 50

	spec = strings.TrimSpace(spec)
	if spec == "" {
		return defNum, defDen
	}
	switch strings.ToLower(spec) {
	case "off", "none", "0":
		return 0, 1
	case "all", "full":
		return 1, 1
	}

	var parts []string
	switch {
	case strings.Contains(spec, "/"):
		parts = strings.SplitN(spec, "/", 2)
	case strings.Contains(spec, ":"):
		parts = strings.SplitN(spec, ":", 2)
	default:
		den, err := strconv.Atoi(spec)
		if err != nil || den < 1 {
			return defNum, defDen
		}
		return 1, den
	}

	num, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	den, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || num < 0 || den < 1 {
		return defNum, defDen
	}
	return num, den
}

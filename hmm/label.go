package hmm

import (
	"fmt"
	"strings"

	"github.com/thuhcsi/crystal-tts/pinyin"
	"github.com/thuhcsi/crystal-tts/stages"
)

// SegInfo is one HTS label line's worth of context (CSegInfo): a single
// phoneme segment plus its syllable/word/phrase/utterance neighborhood.
type SegInfo struct {
	PreSeg, NxtSeg *SegInfo
	PreSyl, NxtSyl *SegInfo
	PrePWd, NxtPWd *SegInfo
	PrePPh, NxtPPh *SegInfo

	BegTime, EndTime int

	SegPhoneme                 string
	SegPos2SylHead, SegPos2SylTail int

	SylFinal                       string
	SylTone                        int
	SylSegNumber                   int
	SylPos2PWdHead, SylPos2PWdTail int
	SylPos2PPhHead, SylPos2PPhTail int
	SylPos2IPhHead, SylPos2IPhTail int
	SylPreBoundaryType, SylNxtBoundaryType int

	PwdSylNumber                   int
	PwdPos2PPhHead, PwdPos2PPhTail int
	PwdPos2IPhHead, PwdPos2IPhTail int

	PphSylNumber int
	PphPWdNumber int
	PphPos2IPhHead, PphPos2IPhTail int

	IphPWdNumber      int
	IphPPhNumber      int
	IphIntonationType int
}

// boundaryCode collapses a Boundary into the label format's coarse
// syllable/word/silence scale: 0 syllable-internal or lexicon word, 1
// prosodic word, 5 anything at or above prosodic-phrase strength.
func boundaryCode(b stages.Boundary) int {
	switch {
	case b == stages.BoundPWord:
		return 1
	case b >= stages.BoundPPhrase:
		return 5
	default:
		return 0
	}
}

// BuildLabInfo builds the segment list for one sentence's units
// (CSSML2Lab::buildLabInfo, both overloads combined).
func BuildLabInfo(units []UnitItem) []*SegInfo {
	if len(units) == 0 {
		return nil
	}
	infos := buildContext(units)
	segs := buildSegs(infos)
	chainSegments(segs)
	return segs
}

func buildSegs(infos []unitInfo) []*SegInfo {
	var out []*SegInfo
	preBoundaryType := 5

	for i := range infos {
		cur := &infos[i]

		var base SegInfo
		sylPhoneme := cur.unit.Phoneme
		var segPhones []string
		if split, ok := pinyin.SplitSyllable(sylPhoneme); ok {
			base.SylFinal = split.FinalTone()
			base.SylTone = split.Tone
			segPhones = split.Phones()
		} else {
			base.SylFinal = "X"
			segPhones = []string{sylPhoneme}
		}

		base.SylPos2PWdHead = cur.sylPos2PWdHead + 1
		base.SylPos2PWdTail = cur.sylPos2PWdTail + 1
		base.SylPos2PPhHead = cur.sylPos2PPhHead + 1
		base.SylPos2PPhTail = cur.sylPos2PPhTail + 1
		base.SylPos2IPhHead = cur.sylPos2IPhHead + 1
		base.SylPos2IPhTail = cur.sylPos2IPhTail + 1

		base.PwdSylNumber = base.SylPos2PWdHead + base.SylPos2PWdTail - 1
		base.PwdPos2PPhHead = cur.pwdPos2PPhHead + 1
		base.PwdPos2PPhTail = cur.pwdPos2PPhTail + 1
		base.PwdPos2IPhHead = cur.pwdPos2IPhHead + 1
		base.PwdPos2IPhTail = cur.pwdPos2IPhTail + 1

		base.PphSylNumber = base.SylPos2PPhHead + base.SylPos2PPhTail - 1
		base.PphPWdNumber = base.PwdPos2PPhHead + base.PwdPos2PPhTail - 1
		base.PphPos2IPhHead = cur.pphPos2IPhHead + 1
		base.PphPos2IPhTail = cur.pphPos2IPhTail + 1

		base.IphPWdNumber = base.PwdPos2IPhHead + base.PwdPos2IPhTail - 1
		base.IphPPhNumber = base.PphPos2IPhHead + base.PphPos2IPhTail - 1
		base.IphIntonationType = cur.iphIntonationType

		code := boundaryCode(cur.unit.BoundaryType)
		base.SylPreBoundaryType = preBoundaryType
		base.SylNxtBoundaryType = code
		base.SylSegNumber = len(segPhones)

		for i, p := range segPhones {
			seg := base
			seg.SegPos2SylHead = i + 1
			seg.SegPos2SylTail = base.SylSegNumber - i
			seg.SegPhoneme = p
			out = append(out, &seg)
		}

		if code == 5 && cur.unit.isBreak() {
			var sil SegInfo
			sil.SegPhoneme = "sil"
			sil.SylFinal = "X"
			out = append(out, &sil)
		}

		preBoundaryType = code
	}
	return out
}

// chainSegments links preSeg/nxtSeg/preSyl/nxtSyl/prePWd/nxtPWd/prePPh/nxtPPh
// across the flat segment list, closing out each scope lazily (a segment
// only learns its successor once the next segment of that scope appears).
func chainSegments(out []*SegInfo) {
	var preSeg *SegInfo
	var preSyl, curSyl *SegInfo
	var prePWd, curPWd *SegInfo
	var prePPh, curPPh *SegInfo
	var preSylSegs, prePWdSegs, prePPhSegs []*SegInfo

	for _, curSeg := range out {
		curSeg.PreSeg = preSeg
		if preSeg != nil {
			preSeg.NxtSeg = curSeg
		}
		preSeg = curSeg

		if curSeg.SegPos2SylHead == 1 {
			curSyl = curSeg
			for _, s := range preSylSegs {
				s.NxtSyl = curSyl
			}
			preSylSegs = nil
		}
		preSylSegs = append(preSylSegs, curSeg)
		curSeg.PreSyl = preSyl
		if curSeg.SegPos2SylTail == 1 {
			preSyl = curSyl
		}

		if curSeg.SylPos2PWdHead == 1 && curSeg.SegPos2SylHead == 1 {
			curPWd = curSeg
			for _, s := range prePWdSegs {
				s.NxtPWd = curPWd
			}
			prePWdSegs = nil
		}
		prePWdSegs = append(prePWdSegs, curSeg)
		curSeg.PrePWd = prePWd
		if curSeg.SylPos2PWdTail == 1 && curSeg.SegPos2SylTail == 1 {
			prePWd = curPWd
		}

		if curSeg.SylPos2PPhHead == 1 && curSeg.SegPos2SylHead == 1 {
			curPPh = curSeg
			for _, s := range prePPhSegs {
				s.NxtPPh = curPPh
			}
			prePPhSegs = nil
		}
		prePPhSegs = append(prePPhSegs, curSeg)
		curSeg.PrePPh = prePPh
		if curSeg.SylPos2PPhTail == 1 && curSeg.SegPos2SylTail == 1 {
			prePPh = curPPh
		}
	}
}

// Label renders the segment's HTS context label line (CSegInfo::print),
// matching its field order and separator syntax exactly (§4.12.4).
func (s *SegInfo) Label() string {
	pprPhoneme, prePhoneme, nxtPhoneme, nntPhoneme := "X", "X", "X", "X"
	if s.PreSeg != nil {
		prePhoneme = s.PreSeg.SegPhoneme
		if s.PreSeg.PreSeg != nil {
			pprPhoneme = s.PreSeg.PreSeg.SegPhoneme
		}
	}
	if s.NxtSeg != nil {
		nxtPhoneme = s.NxtSeg.SegPhoneme
		if s.NxtSeg.NxtSeg != nil {
			nntPhoneme = s.NxtSeg.NxtSeg.SegPhoneme
		}
	}

	preSylTone, nxtSylTone := 0, 0
	preSylSegNum, nxtSylSegNum := 0, 0
	if s.PreSyl != nil {
		preSylTone = s.PreSyl.SylTone
		preSylSegNum = s.PreSyl.SylSegNumber
	}
	if s.NxtSyl != nil {
		nxtSylTone = s.NxtSyl.SylTone
		nxtSylSegNum = s.NxtSyl.SylSegNumber
	}

	prePWdSylNum, nxtPWdSylNum := 0, 0
	if s.PrePWd != nil {
		prePWdSylNum = s.PrePWd.PwdSylNumber
	}
	if s.NxtPWd != nil {
		nxtPWdSylNum = s.NxtPWd.PwdSylNumber
	}

	prePPhSylNum, nxtPPhSylNum := 0, 0
	prePPhPWdNum, nxtPPhPWdNum := 0, 0
	if s.PrePPh != nil {
		prePPhSylNum = s.PrePPh.PphSylNumber
		prePPhPWdNum = s.PrePPh.PphPWdNumber
	}
	if s.NxtPPh != nil {
		nxtPPhSylNum = s.NxtPPh.PphSylNumber
		nxtPPhPWdNum = s.NxtPPh.PphPWdNumber
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d\t%d\t", s.BegTime, s.EndTime)
	fmt.Fprintf(&b, "%s^%s-%s+%s=%s", pprPhoneme, prePhoneme, s.SegPhoneme, nxtPhoneme, nntPhoneme)
	fmt.Fprintf(&b, "@%d_%d", s.SegPos2SylHead, s.SegPos2SylTail)
	fmt.Fprintf(&b, "/A:%d_%d_%d", preSylTone, 0, preSylSegNum)
	fmt.Fprintf(&b, "/B:%d-%d-%d", s.SylTone, 0, s.SylSegNumber)
	fmt.Fprintf(&b, "@%d-%d", s.SylPos2PWdHead, s.SylPos2PWdTail)
	fmt.Fprintf(&b, "&%d-%d", s.SylPos2PPhHead, s.SylPos2PPhTail)
	fmt.Fprintf(&b, "#%d-%d", s.SylPos2IPhHead, s.SylPos2IPhTail)
	fmt.Fprintf(&b, "$%d-%d", 0, 0)
	fmt.Fprintf(&b, "!%d-%d", 0, 0)
	fmt.Fprintf(&b, ";%d-%d", s.SylPreBoundaryType, s.SylNxtBoundaryType)
	fmt.Fprintf(&b, "|%s", s.SylFinal)
	fmt.Fprintf(&b, "/C:%d+%d+%d", nxtSylTone, 0, nxtSylSegNum)
	fmt.Fprintf(&b, "/D:X_%d", prePWdSylNum)
	fmt.Fprintf(&b, "/E:X+%d", s.PwdSylNumber)
	fmt.Fprintf(&b, "@%d+%d", s.PwdPos2PPhHead, s.PwdPos2PPhTail)
	fmt.Fprintf(&b, "&%d+%d", s.PwdPos2IPhHead, s.PwdPos2IPhTail)
	fmt.Fprintf(&b, "#%d+%d", 0, 0)
	fmt.Fprintf(&b, "/F:X_%d", nxtPWdSylNum)
	fmt.Fprintf(&b, "/G:%d_%d", prePPhSylNum, prePPhPWdNum)
	fmt.Fprintf(&b, "/H:%d=%d", s.PphSylNumber, s.PphPWdNumber)
	fmt.Fprintf(&b, "^%d=%d", s.PphPos2IPhHead, s.PphPos2IPhTail)
	fmt.Fprintf(&b, "|X")
	fmt.Fprintf(&b, "/I:%d=%d", nxtPPhSylNum, nxtPPhPWdNum)
	fmt.Fprintf(&b, "/K:%d#%d!%d@%d", s.IphPWdNumber, s.IphPPhNumber, 0, 0)
	fmt.Fprintf(&b, "/M:%d+%d-%d^%d", 0, 0, 0, 0)
	fmt.Fprintf(&b, "/N:%d", s.IphIntonationType)
	return b.String()
}

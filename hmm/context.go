package hmm

import "github.com/thuhcsi/crystal-tts/stages"

// unitInfo is the per-syllable context record (CUnitInfo). Position fields
// are counted from the head/tail of each enclosing scope, 0-based; see
// buildPosContext for how the drop-through cascade fills them in.
type unitInfo struct {
	unit *UnitItem

	preSyl, nxtSyl *unitInfo
	preLWd, nxtLWd *unitInfo
	prePWd, nxtPWd *unitInfo
	prePPh, nxtPPh *unitInfo
	preIPh, nxtIPh *unitInfo

	sylPos2LWdHead, sylPos2LWdTail int
	sylPos2PWdHead, sylPos2PWdTail int
	sylPos2PPhHead, sylPos2PPhTail int
	sylPos2IPhHead, sylPos2IPhTail int
	sylPos2UttHead, sylPos2UttTail int
	lwdPos2PWdHead, lwdPos2PWdTail int
	pwdPos2PPhHead, pwdPos2PPhTail int
	pwdPos2IPhHead, pwdPos2IPhTail int
	pwdPos2UttHead, pwdPos2UttTail int
	pphPos2IPhHead, pphPos2IPhTail int
	pphPos2UttHead, pphPos2UttTail int
	iphPos2UttHead, iphPos2UttTail int
	iphIntonationType              int
}

// tPosContext is the running-counter state threaded across buildPosContext
// calls for one sentence (TPosContext). The idxLast*Bound and idxCurSyllable
// fields count syllables from the start of the sentence; each idxXInY field
// counts X units within the current Y and is reset when Y closes.
type tPosContext struct {
	idxLastUttBound, idxLastIPhBound, idxLastPPhBound int
	idxLastPWdBound, idxLastLWdBound                  int
	idxCurSyllable                                     int
	idxLWdInPWd                                        int
	idxPWdInPPh, idxPWdInIPh, idxPWdInUtt              int
	idxPPhInIPh, idxPPhInUtt                           int
	idxIPhInUtt                                        int
}

// buildContext builds the per-syllable context chain for one sentence's
// units (CSSML2Lab::buildContext).
func buildContext(units []UnitItem) []unitInfo {
	infos := make([]unitInfo, len(units))
	for i := range units {
		infos[i].unit = &units[i]
	}
	for i := 1; i < len(infos); i++ {
		infos[i].preSyl = &infos[i-1]
		infos[i-1].nxtSyl = &infos[i]
	}

	var pos tPosContext
	for i := range infos {
		pos.idxCurSyllable++
		buildPosContext(&pos, infos)
	}
	return infos
}

// buildPosContext fills in one syllable's context position fields
// (CSSML2Lab::buildPosContext). As utterance boundaries are also
// intonation-phrase boundaries, which are also prosodic-phrase boundaries,
// which are also prosodic-word boundaries, which are also lexicon-word
// boundaries, a drop-through strategy closes out each scope in turn.
func buildPosContext(pos *tPosContext, infos []unitInfo) {
	idx := pos.idxCurSyllable - 1
	cur := &infos[idx]
	cur.sylPos2LWdHead = idx - pos.idxLastLWdBound
	cur.sylPos2PWdHead = idx - pos.idxLastPWdBound
	cur.sylPos2PPhHead = idx - pos.idxLastPPhBound
	cur.sylPos2IPhHead = idx - pos.idxLastIPhBound
	cur.sylPos2UttHead = idx - pos.idxLastUttBound

	boundType := cur.unit.BoundaryType
	if boundType < stages.BoundLWord {
		return
	}

	// lexicon word boundary
	if pos.idxCurSyllable > pos.idxLastLWdBound {
		var preLWd, nxtLWd *unitInfo
		if pos.idxLastLWdBound != 0 {
			preLWd = &infos[pos.idxLastLWdBound-1]
		}
		if pos.idxCurSyllable < len(infos) {
			nxtLWd = &infos[pos.idxCurSyllable]
		}
		for i := pos.idxLastLWdBound; i < pos.idxCurSyllable; i++ {
			s := &infos[i]
			s.sylPos2LWdTail = pos.idxCurSyllable - pos.idxLastLWdBound - s.sylPos2LWdHead - 1
			s.lwdPos2PWdHead = pos.idxLWdInPWd
			s.preLWd = preLWd
			s.nxtLWd = nxtLWd
		}
		pos.idxLWdInPWd++
	}
	pos.idxLastLWdBound = pos.idxCurSyllable
	if boundType == stages.BoundLWord {
		return
	}

	// prosodic word boundary
	if pos.idxCurSyllable > pos.idxLastPWdBound {
		var prePWd, nxtPWd *unitInfo
		if pos.idxLastPWdBound != 0 {
			prePWd = &infos[pos.idxLastPWdBound-1]
		}
		if pos.idxCurSyllable < len(infos) {
			nxtPWd = &infos[pos.idxCurSyllable]
		}
		for i := pos.idxLastPWdBound; i < pos.idxCurSyllable; i++ {
			s := &infos[i]
			s.sylPos2PWdTail = pos.idxCurSyllable - pos.idxLastPWdBound - s.sylPos2PWdHead - 1
			s.lwdPos2PWdTail = pos.idxLWdInPWd - s.lwdPos2PWdHead - 1
			s.pwdPos2PPhHead = pos.idxPWdInPPh
			s.pwdPos2IPhHead = pos.idxPWdInIPh
			s.pwdPos2UttHead = pos.idxPWdInUtt
			s.prePWd = prePWd
			s.nxtPWd = nxtPWd
		}
		pos.idxPWdInPPh++
		pos.idxPWdInIPh++
		pos.idxPWdInUtt++
		pos.idxLWdInPWd = 0
	}
	pos.idxLastPWdBound = pos.idxCurSyllable
	if boundType == stages.BoundPWord {
		return
	}

	// prosodic phrase boundary
	if pos.idxCurSyllable > pos.idxLastPPhBound {
		var prePPh, nxtPPh *unitInfo
		if pos.idxLastPPhBound != 0 {
			prePPh = &infos[pos.idxLastPPhBound-1]
		}
		if pos.idxCurSyllable < len(infos) {
			nxtPPh = &infos[pos.idxCurSyllable]
		}
		for i := pos.idxLastPPhBound; i < pos.idxCurSyllable; i++ {
			s := &infos[i]
			s.sylPos2PPhTail = pos.idxCurSyllable - pos.idxLastPPhBound - s.sylPos2PPhHead - 1
			s.pwdPos2PPhTail = pos.idxPWdInPPh - s.pwdPos2PPhHead - 1
			s.pphPos2IPhHead = pos.idxPPhInIPh
			s.pphPos2UttHead = pos.idxPPhInUtt
			s.prePPh = prePPh
			s.nxtPPh = nxtPPh
		}
		pos.idxPPhInIPh++
		pos.idxPPhInUtt++
		pos.idxPWdInPPh = 0
	}
	pos.idxLastPPhBound = pos.idxCurSyllable
	if boundType == stages.BoundPPhrase {
		return
	}

	// intonation phrase boundary
	if pos.idxCurSyllable > pos.idxLastIPhBound {
		var preIPh, nxtIPh *unitInfo
		if pos.idxLastIPhBound != 0 {
			preIPh = &infos[pos.idxLastIPhBound-1]
		}
		if pos.idxCurSyllable < len(infos) {
			nxtIPh = &infos[pos.idxCurSyllable]
		}
		for i := pos.idxLastIPhBound; i < pos.idxCurSyllable; i++ {
			s := &infos[i]
			s.sylPos2IPhTail = pos.idxCurSyllable - pos.idxLastIPhBound - s.sylPos2IPhHead - 1
			s.pwdPos2IPhTail = pos.idxPWdInIPh - s.pwdPos2IPhHead - 1
			s.pphPos2IPhTail = pos.idxPPhInIPh - s.pphPos2IPhHead - 1
			s.iphPos2UttHead = pos.idxIPhInUtt
			if nxtIPh == nil {
				s.iphIntonationType = 1
			} else {
				s.iphIntonationType = 0
			}
			s.preIPh = preIPh
			s.nxtIPh = nxtIPh
		}
		pos.idxIPhInUtt++
		pos.idxPWdInIPh = 0
		pos.idxPPhInIPh = 0
	}
	pos.idxLastIPhBound = pos.idxCurSyllable
	if boundType == stages.BoundIPhrase {
		return
	}

	// utterance (sentence) boundary
	if pos.idxCurSyllable > pos.idxLastUttBound {
		for i := pos.idxLastUttBound; i < pos.idxCurSyllable; i++ {
			s := &infos[i]
			s.sylPos2UttTail = pos.idxCurSyllable - pos.idxLastUttBound - s.sylPos2UttHead - 1
			s.pwdPos2UttTail = pos.idxPWdInUtt - s.pwdPos2UttHead - 1
			s.pphPos2UttTail = pos.idxPPhInUtt - s.pphPos2UttHead - 1
			s.iphPos2UttTail = pos.idxIPhInUtt - s.iphPos2UttHead - 1
		}
		pos.idxPWdInUtt = 0
		pos.idxPPhInUtt = 0
		pos.idxIPhInUtt = 0
	}
	pos.idxLastUttBound = pos.idxCurSyllable
}

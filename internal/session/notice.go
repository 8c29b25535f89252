// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// NoticeKind is the severity of a blocking notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// Notice is a message the user must acknowledge before continuing.
type Notice struct {
	Kind NoticeKind
	Text string
}

func (s *Session) notify(kind NoticeKind, text string) {
	s.notices = append(s.notices, Notice{Kind: kind, Text: text})
}

// Notify queues a notice raised outside the flows, such as an unreadable
// path typed by the user.
func (s *Session) Notify(kind NoticeKind, text string) {
	if text == "" {
		return
	}
	s.notify(kind, text)
}

// Notices returns the queued notices, oldest first.
func (s *Session) Notices() []Notice {
	return append([]Notice(nil), s.notices...)
}

// CurrentNotice returns the oldest unacknowledged notice.
func (s *Session) CurrentNotice() (Notice, bool) {
	if len(s.notices) == 0 {
		return Notice{}, false
	}
	return s.notices[0], true
}

// HasNotice reports whether a notice is waiting.
func (s *Session) HasNotice() bool {
	return len(s.notices) > 0
}

// DismissNotice acknowledges the oldest notice.
func (s *Session) DismissNotice() {
	if len(s.notices) > 0 {
		s.notices = s.notices[1:]
	}
}

// DrainNotices returns and clears every queued notice.
func (s *Session) DrainNotices() []Notice {
	n := s.notices
	s.notices = nil
	return n
}

package mmi

// Text is one text string extracted by the Text Defragmenter from a
// menu/list payload (spec.md §3, "Text string"). Owned records whether
// Data is a fresh allocation produced by joining multiple TEXT_MORE
// fragments, or a view into the caller-owned reassembled payload
// (single TEXT_LAST case) — informational only, Go's GC owns the
// lifetime either way.
type Text struct {
	Data  []byte
	Owned bool
}

// MenuList is the payload delivered to the menu/list callback
// (spec.md §4.3, step 4). ItemsRaw is non-empty only when the source
// choice count was 0xFF (raw items blob, caller interprets it itself).
type MenuList struct {
	Title, Subtitle, Bottom Text
	ItemCount               int
	Items                   []Text
	ItemsRaw                []byte
}

// Go closures make the C API's (fn, user_arg) pair redundant — a
// caller wanting bound state just captures it in the closure it
// registers. Each Register*Callback method below replaces exactly the
// one slot it names, matching spec.md §4.7's one-registration-per-
// object-class operations; see DESIGN.md for this Open Question
// resolution.
type (
	CloseCallback           func(slot uint8, session uint16, cmdID, delay uint8)
	DisplayControlCallback  func(slot uint8, session uint16, cmdID, mmiMode uint8)
	KeypadControlCallback   func(slot uint8, session uint16, cmdID uint8, keycodes []byte)
	EnqCallback             func(slot uint8, session uint16, blindAnswer bool, answerLength uint8, text []byte)
	MenuCallback            func(slot uint8, session uint16, menu MenuList)
	ListCallback            func(slot uint8, session uint16, list MenuList)
	SubtitleSegmentCallback  func(slot uint8, session uint16, data []byte)
	SubtitleDownloadCallback func(slot uint8, session uint16, data []byte)
	SceneEndMarkCallback     func(slot uint8, session uint16, decoderContinue, sceneReveal, sendSceneDone bool, sceneTag uint8)
	SceneControlCallback     func(slot uint8, session uint16, decoderContinue, sceneReveal bool, sceneTag uint8)
	FlushDownloadCallback    func(slot uint8, session uint16)
)

// callbackTable is the 11-slot registry (spec.md §9 design note: "the
// source has 11 parallel (fn-pointer, arg) slots plus a mutex"). It is
// embedded directly in Resource and guarded by Resource.mu.
type callbackTable struct {
	close           CloseCallback
	displayControl  DisplayControlCallback
	keypadControl   KeypadControlCallback
	enq             EnqCallback
	menu            MenuCallback
	list            ListCallback
	subtitleSegment  SubtitleSegmentCallback
	subtitleDownload SubtitleDownloadCallback
	sceneEndMark     SceneEndMarkCallback
	sceneControl     SceneControlCallback
	flushDownload    FlushDownloadCallback
}

// RegisterCloseCallback registers fn for incoming close_mmi objects.
// Registration may race with Deliver; either the old or the new
// callback observes a given message, never a mix (spec.md §5).
func (r *Resource) RegisterCloseCallback(fn CloseCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.close = fn
}

func (r *Resource) RegisterDisplayControlCallback(fn DisplayControlCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.displayControl = fn
}

func (r *Resource) RegisterKeypadControlCallback(fn KeypadControlCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.keypadControl = fn
}

func (r *Resource) RegisterEnqCallback(fn EnqCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.enq = fn
}

func (r *Resource) RegisterMenuCallback(fn MenuCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.menu = fn
}

func (r *Resource) RegisterListCallback(fn ListCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.list = fn
}

func (r *Resource) RegisterSubtitleSegmentCallback(fn SubtitleSegmentCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.subtitleSegment = fn
}

func (r *Resource) RegisterSubtitleDownloadCallback(fn SubtitleDownloadCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.subtitleDownload = fn
}

func (r *Resource) RegisterSceneEndMarkCallback(fn SceneEndMarkCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.sceneEndMark = fn
}

func (r *Resource) RegisterSceneControlCallback(fn SceneControlCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.sceneControl = fn
}

func (r *Resource) RegisterFlushDownloadCallback(fn FlushDownloadCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks.flushDownload = fn
}

// The getters below copy a callback slot under the lock and return it
// for the caller to invoke unlocked — the re-entrant-send contract
// from spec.md §5.
func (r *Resource) getClose() CloseCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.close
}

func (r *Resource) getDisplayControl() DisplayControlCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.displayControl
}

func (r *Resource) getKeypadControl() KeypadControlCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.keypadControl
}

func (r *Resource) getEnq() EnqCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.enq
}

func (r *Resource) getMenu() MenuCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.menu
}

func (r *Resource) getList() ListCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.list
}

func (r *Resource) getSubtitleSegment() SubtitleSegmentCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.subtitleSegment
}

func (r *Resource) getSubtitleDownload() SubtitleDownloadCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.subtitleDownload
}

func (r *Resource) getSceneEndMark() SceneEndMarkCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.sceneEndMark
}

func (r *Resource) getSceneControl() SceneControlCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.sceneControl
}

func (r *Resource) getFlushDownload() FlushDownloadCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks.flushDownload
}

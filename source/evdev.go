//go:build linux

package source

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Alia5/ps2host/driver"
	"github.com/Alia5/ps2host/scancode"
	"github.com/holoplot/go-evdev"
)

type set2Key struct {
	code     scancode.ScanCode
	extended bool
}

// set2 maps Linux key codes to scan code set 2.
var set2 = map[evdev.EvCode]set2Key{
	evdev.KEY_ESC: {code: scancode.CodeEscape},
	evdev.KEY_F1:  {code: scancode.CodeF1},
	evdev.KEY_F2:  {code: scancode.CodeF2},
	evdev.KEY_F3:  {code: scancode.CodeF3},
	evdev.KEY_F4:  {code: scancode.CodeF4},
	evdev.KEY_F5:  {code: scancode.CodeF5},
	evdev.KEY_F6:  {code: scancode.CodeF6},
	evdev.KEY_F7:  {code: scancode.CodeF7},
	evdev.KEY_F8:  {code: scancode.CodeF8},
	evdev.KEY_F9:  {code: scancode.CodeF9},
	evdev.KEY_F10: {code: scancode.CodeF10},
	evdev.KEY_F11: {code: scancode.CodeF11},
	evdev.KEY_F12: {code: scancode.CodeF12},

	evdev.KEY_GRAVE:     {code: 0x0E},
	evdev.KEY_1:         {code: 0x16},
	evdev.KEY_2:         {code: 0x1E},
	evdev.KEY_3:         {code: 0x26},
	evdev.KEY_4:         {code: 0x25},
	evdev.KEY_5:         {code: 0x2E},
	evdev.KEY_6:         {code: 0x36},
	evdev.KEY_7:         {code: 0x3D},
	evdev.KEY_8:         {code: 0x3E},
	evdev.KEY_9:         {code: 0x46},
	evdev.KEY_0:         {code: 0x45},
	evdev.KEY_MINUS:     {code: 0x4E},
	evdev.KEY_EQUAL:     {code: 0x55},
	evdev.KEY_BACKSPACE: {code: scancode.CodeBackspace},

	evdev.KEY_TAB:        {code: scancode.CodeTab},
	evdev.KEY_Q:          {code: 0x15},
	evdev.KEY_W:          {code: 0x1D},
	evdev.KEY_E:          {code: 0x24},
	evdev.KEY_R:          {code: 0x2D},
	evdev.KEY_T:          {code: 0x2C},
	evdev.KEY_Y:          {code: 0x35},
	evdev.KEY_U:          {code: 0x3C},
	evdev.KEY_I:          {code: 0x43},
	evdev.KEY_O:          {code: 0x44},
	evdev.KEY_P:          {code: 0x4D},
	evdev.KEY_LEFTBRACE:  {code: 0x54},
	evdev.KEY_RIGHTBRACE: {code: 0x5B},
	evdev.KEY_BACKSLASH:  {code: 0x5D},

	evdev.KEY_CAPSLOCK:   {code: scancode.CodeCapsLock},
	evdev.KEY_A:          {code: 0x1C},
	evdev.KEY_S:          {code: 0x1B},
	evdev.KEY_D:          {code: 0x23},
	evdev.KEY_F:          {code: 0x2B},
	evdev.KEY_G:          {code: 0x34},
	evdev.KEY_H:          {code: 0x33},
	evdev.KEY_J:          {code: 0x3B},
	evdev.KEY_K:          {code: 0x42},
	evdev.KEY_L:          {code: 0x4B},
	evdev.KEY_SEMICOLON:  {code: 0x4C},
	evdev.KEY_APOSTROPHE: {code: 0x52},
	evdev.KEY_ENTER:      {code: scancode.CodeEnter},

	evdev.KEY_LEFTSHIFT:  {code: scancode.CodeLeftShift},
	evdev.KEY_102ND:      {code: 0x61},
	evdev.KEY_Z:          {code: 0x1A},
	evdev.KEY_X:          {code: 0x22},
	evdev.KEY_C:          {code: 0x21},
	evdev.KEY_V:          {code: 0x2A},
	evdev.KEY_B:          {code: 0x32},
	evdev.KEY_N:          {code: 0x31},
	evdev.KEY_M:          {code: 0x3A},
	evdev.KEY_COMMA:      {code: 0x41},
	evdev.KEY_DOT:        {code: 0x49},
	evdev.KEY_SLASH:      {code: 0x4A},
	evdev.KEY_RIGHTSHIFT: {code: scancode.CodeRightShift},

	evdev.KEY_LEFTCTRL:  {code: scancode.CodeControl},
	evdev.KEY_LEFTMETA:  {code: scancode.CodeLeftWindows, extended: true},
	evdev.KEY_LEFTALT:   {code: scancode.CodeAlt},
	evdev.KEY_SPACE:     {code: scancode.CodeSpace},
	evdev.KEY_RIGHTALT:  {code: scancode.CodeAlt, extended: true},
	evdev.KEY_RIGHTMETA: {code: scancode.CodeRightWindows, extended: true},
	evdev.KEY_COMPOSE:   {code: scancode.CodeMenu, extended: true},
	evdev.KEY_RIGHTCTRL: {code: scancode.CodeControl, extended: true},

	evdev.KEY_SCROLLLOCK: {code: scancode.CodeScrollLock},
	evdev.KEY_NUMLOCK:    {code: scancode.CodeNumLock},

	evdev.KEY_INSERT:   {code: scancode.CodeInsert, extended: true},
	evdev.KEY_DELETE:   {code: scancode.CodeDelete, extended: true},
	evdev.KEY_HOME:     {code: scancode.CodeHome, extended: true},
	evdev.KEY_END:      {code: scancode.CodeEnd, extended: true},
	evdev.KEY_PAGEUP:   {code: scancode.CodePageUp, extended: true},
	evdev.KEY_PAGEDOWN: {code: scancode.CodePageDown, extended: true},

	evdev.KEY_UP:    {code: scancode.CodeUp, extended: true},
	evdev.KEY_DOWN:  {code: scancode.CodeDown, extended: true},
	evdev.KEY_LEFT:  {code: scancode.CodeLeft, extended: true},
	evdev.KEY_RIGHT: {code: scancode.CodeRight, extended: true},

	evdev.KEY_KPSLASH:    {code: scancode.CodeKpSlash, extended: true},
	evdev.KEY_KPASTERISK: {code: scancode.CodeKpAsterisk},
	evdev.KEY_KPMINUS:    {code: scancode.CodeKpMinus},
	evdev.KEY_KPPLUS:     {code: scancode.CodeKpPlus},
	evdev.KEY_KPENTER:    {code: scancode.CodeKpEnter, extended: true},
	evdev.KEY_KPDOT:      {code: scancode.CodeKpDot},
	evdev.KEY_KP0:        {code: scancode.CodeKp0},
	evdev.KEY_KP1:        {code: scancode.CodeKp1},
	evdev.KEY_KP2:        {code: scancode.CodeKp2},
	evdev.KEY_KP3:        {code: scancode.CodeKp3},
	evdev.KEY_KP4:        {code: scancode.CodeKp4},
	evdev.KEY_KP5:        {code: scancode.CodeKp5},
	evdev.KEY_KP6:        {code: scancode.CodeKp6},
	evdev.KEY_KP7:        {code: scancode.CodeKp7},
	evdev.KEY_KP8:        {code: scancode.CodeKp8},
	evdev.KEY_KP9:        {code: scancode.CodeKp9},
}

// EncodeKey returns the set 2 bytes a PS/2 keyboard would send for a Linux
// key event. value is 0 for release, 1 for press and 2 for autorepeat.
// Unmapped keys yield nil.
func EncodeKey(code evdev.EvCode, value int32) []byte {
	release := value == 0

	switch code {
	case evdev.KEY_PAUSE:
		if release {
			return nil
		}
		return append([]byte{scancode.PrefixPause}, scancode.PauseSequence[:]...)
	case evdev.KEY_SYSRQ:
		first, second := byte(scancode.CodePrintScreenFirst), byte(scancode.CodePrintScreenSecond)
		if release {
			return []byte{
				scancode.PrefixExtended, scancode.PrefixRelease, first,
				scancode.PrefixExtended, scancode.PrefixRelease, second,
			}
		}
		return []byte{scancode.PrefixExtended, first, scancode.PrefixExtended, second}
	}

	k, ok := set2[code]
	if !ok {
		return nil
	}
	out := make([]byte, 0, 3)
	if k.extended {
		out = append(out, scancode.PrefixExtended)
	}
	if release {
		out = append(out, scancode.PrefixRelease)
	}
	return append(out, byte(k.code))
}

// Evdev reads a Linux input device and re-encodes its key events as set 2
// scan codes.
type Evdev struct {
	path   string
	grab   bool
	logger *slog.Logger
	ch     chan byte

	mu     sync.Mutex
	dev    *evdev.InputDevice
	status driver.Status
}

// OpenEvdev opens the input device at path. With grab set, other readers of
// the device stop receiving its events.
func OpenEvdev(path string, grab bool, logger *slog.Logger) (*Evdev, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Evdev{
		path:   path,
		grab:   grab,
		logger: logger,
		ch:     make(chan byte, bufferSize),
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Evdev) open() error {
	dev, err := evdev.Open(s.path)
	if err != nil {
		return fmt.Errorf("open input device %s: %w", s.path, err)
	}
	if s.grab {
		if err := dev.Grab(); err != nil {
			_ = dev.Close()
			return fmt.Errorf("grab input device %s: %w", s.path, err)
		}
	}
	name, _ := dev.Name()
	s.logger.Info("Reading keyboard from input device", "path", s.path, "name", name)
	s.dev = dev
	go s.pump(dev)
	return nil
}

func (s *Evdev) pump(dev *evdev.InputDevice) {
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			s.mu.Lock()
			if s.dev == dev {
				s.logger.Debug("input device read failed", "path", s.path, "error", err)
				s.status |= driver.StatusFraming
			}
			s.mu.Unlock()
			return
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		for _, b := range EncodeKey(ev.Code, ev.Value) {
			select {
			case s.ch <- b:
			default:
				s.mu.Lock()
				s.status |= driver.StatusOverrun
				s.mu.Unlock()
			}
		}
	}
}

func (s *Evdev) TryRead() (byte, bool) {
	select {
	case b := <-s.ch:
		return b, true
	default:
		return 0, false
	}
}

func (s *Evdev) Status() driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Reinit drops buffered bytes and reopens the device. A failed reopen leaves
// the framing bit set.
func (s *Evdev) Reinit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev != nil {
		_ = s.dev.Close()
		s.dev = nil
	}
	for len(s.ch) > 0 {
		<-s.ch
	}
	s.status = 0
	if err := s.open(); err != nil {
		s.status |= driver.StatusFraming
		return err
	}
	return nil
}

// Close releases the device.
func (s *Evdev) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}

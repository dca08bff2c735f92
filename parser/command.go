package parser

// CommandKind identifies which field(s) of a Command are populated. Go has
// no tagged unions, so Command is a single struct carrying every payload
// shape the VT100 sub-parser can produce; callers switch on Kind the way
// they would match a Rust enum.
//
// Grounded on original_source/src/vt100/src/command.rs's Command<'a> enum.
// The naming below follows SPEC_FULL.md section 4 rather than command.rs
// verbatim: SetGraphicStyle (singular, one style per SGR parameter) is kept
// as SetGraphicStyles (plural) because this parser emits every style in one
// SGR sequence as a single Command, not one Command per parameter.
type CommandKind int

const (
	CmdNone CommandKind = iota

	// cursor positioning
	CmdMoveCursorUp
	CmdMoveCursorDown
	CmdMoveCursorRight
	CmdMoveCursorLeft
	CmdMoveCursorReverseIndex
	CmdSaveCursorToMemory
	CmdRestoreCursorFromMemory
	CmdMoveCursorNextLine
	CmdMoveCursorPreviousLine
	CmdMoveCursorHorizontalAbsolute
	CmdMoveCursorVerticalAbsolute
	CmdMoveCursorPositionViewport

	// cursor visibility
	CmdEnableCursorBlinking
	CmdDisableCursorBlinking
	CmdShowCursor
	CmdHideCursor
	CmdSetCursorStyle

	// viewport positioning
	CmdScrollUp
	CmdScrollDown

	// text modification
	CmdInsertSpaces
	CmdDeleteCharacters
	CmdReplaceWithSpaces
	CmdInsertLines
	CmdDeleteLines
	CmdEraseInDisplay
	CmdEraseInLine

	// text formatting
	CmdSetGraphicStyles
	CmdSetForegroundColourTable
	CmdSetBackgroundColourTable
	CmdSetForegroundColourRgb
	CmdSetBackgroundColourRgb

	// mode changes
	CmdSetKeypadMode
	CmdSetCursorKeyInputMode
	CmdSetBracketedPasteMode

	// query state
	CmdQueryCursorPosition
	CmdQueryTerminalIdentity

	// tabs
	CmdSetTabStopAtCurrentColumn
	CmdAdvanceCursorToTabStop
	CmdReverseCursorToTabStop
	CmdClearCurrentTabStop
	CmdClearAllTabStops

	// designate character set
	CmdDesignateCharacterSet

	// scrolling margins
	CmdSetScrollRegion

	// operating system command
	CmdSetWindowTitle
	CmdSetHyperlink

	// alternate screen buffer / misc screen modes
	CmdEnableAlternateBuffer
	CmdDisableAlternateBuffer
	CmdSaveScreen
	CmdRestoreScreen
	CmdSetScreenMode
	CmdResetScreenMode
	CmdEnableLineWrapping
	CmdDisableLineWrapping

	// window width
	CmdSetConsoleWidth

	// mouse tracking (SPEC_FULL.md supplement over the disabled reference code)
	CmdSetMouseTrackingMode
	CmdSetMouseEncoding

	// window actions (xterm window manipulation, CSI t)
	CmdWindowAction

	// soft reset
	CmdSoftReset
)

// Vector2 mirrors misc.rs's generic Vector2<T>, specialised to int since Go
// generics over a struct field type would force every Command consumer to
// also be generic for no benefit here.
type Vector2 struct {
	X, Y int
}

// ScrollRegion is a 1-based, inclusive [Top, Bottom] row range.
type ScrollRegion struct {
	Top, Bottom int
}

// EraseMode mirrors misc.rs's EraseMode.
type EraseMode int

const (
	EraseFromCursorToEnd EraseMode = iota
	EraseFromCursorToStart
	EraseEntireDisplay
	EraseSavedLines
)

func eraseModeFromInt(v int) (EraseMode, bool) {
	switch v {
	case 0:
		return EraseFromCursorToEnd, true
	case 1:
		return EraseFromCursorToStart, true
	case 2:
		return EraseEntireDisplay, true
	case 3:
		return EraseSavedLines, true
	default:
		return 0, false
	}
}

// CharacterSet mirrors misc.rs's CharacterSet, the designate-charset target.
type CharacterSet int

const (
	CharacterSetAscii CharacterSet = iota
	CharacterSetLineDrawing
)

// InputMode mirrors misc.rs's InputMode (keypad / cursor-key application mode).
type InputMode int

const (
	InputModeApplication InputMode = iota
	InputModeNumeric
)

// CursorStyle mirrors common.rs's CursorStyle.
type CursorStyle int

const (
	CursorStyleBlock CursorStyle = iota
	CursorStyleUnderline
	CursorStyleBar
)

// cursorStyleFromInt follows DECSCUSR (CSI Ps SP q) numbering: 0/1 block
// blink/steady, 2 block steady, 3/4 underline blink/steady, 5/6 bar
// blink/steady. Blink-vs-steady collapses to CursorStyle alone here;
// blinking state is tracked separately via CmdEnable/DisableCursorBlinking.
func cursorStyleFromInt(v int) (CursorStyle, bool) {
	switch v {
	case 0, 1, 2:
		return CursorStyleBlock, true
	case 3, 4:
		return CursorStyleUnderline, true
	case 5, 6:
		return CursorStyleBar, true
	default:
		return 0, false
	}
}

// Rgb8 mirrors common.rs's Rgb8: a true-colour triple with no scaling or
// approximation applied (see SPEC_FULL.md section 4.5 on the removed
// RGB-scaling workaround).
type Rgb8 struct {
	R, G, B uint8
}

// GraphicStyle mirrors common.rs's GraphicStyle (SGR parameter semantics).
type GraphicStyle int

const (
	StyleResetAll GraphicStyle = iota
	StyleEnableBold
	StyleEnableDim
	StyleEnableItalic
	StyleEnableUnderline
	StyleEnableBlinking
	StyleEnableInverse
	StyleEnableHidden
	StyleEnableStrikethrough
	StyleDisableWeight
	StyleDisableItalic
	StyleDisableUnderline
	StyleDisableBlinking
	StyleDisableInverse
	StyleDisableHidden
	StyleDisableStrikethrough
	StyleForegroundBlack
	StyleForegroundRed
	StyleForegroundGreen
	StyleForegroundYellow
	StyleForegroundBlue
	StyleForegroundMagenta
	StyleForegroundCyan
	StyleForegroundWhite
	StyleForegroundExtended
	StyleForegroundDefault
	StyleBackgroundBlack
	StyleBackgroundRed
	StyleBackgroundGreen
	StyleBackgroundYellow
	StyleBackgroundBlue
	StyleBackgroundMagenta
	StyleBackgroundCyan
	StyleBackgroundWhite
	StyleBackgroundExtended
	StyleBackgroundDefault
	StyleBrightForegroundBlack
	StyleBrightForegroundRed
	StyleBrightForegroundGreen
	StyleBrightForegroundYellow
	StyleBrightForegroundBlue
	StyleBrightForegroundMagenta
	StyleBrightForegroundCyan
	StyleBrightForegroundWhite
	StyleBrightBackgroundBlack
	StyleBrightBackgroundRed
	StyleBrightBackgroundGreen
	StyleBrightBackgroundYellow
	StyleBrightBackgroundBlue
	StyleBrightBackgroundMagenta
	StyleBrightBackgroundCyan
	StyleBrightBackgroundWhite
)

var graphicStyleByCode = map[int]GraphicStyle{
	0: StyleResetAll, 1: StyleEnableBold, 2: StyleEnableDim, 3: StyleEnableItalic,
	4: StyleEnableUnderline, 5: StyleEnableBlinking, 7: StyleEnableInverse,
	8: StyleEnableHidden, 9: StyleEnableStrikethrough,
	22: StyleDisableWeight, 23: StyleDisableItalic, 24: StyleDisableUnderline,
	25: StyleDisableBlinking, 27: StyleDisableInverse, 28: StyleDisableHidden,
	29: StyleDisableStrikethrough,
	30: StyleForegroundBlack, 31: StyleForegroundRed, 32: StyleForegroundGreen,
	33: StyleForegroundYellow, 34: StyleForegroundBlue, 35: StyleForegroundMagenta,
	36: StyleForegroundCyan, 37: StyleForegroundWhite, 38: StyleForegroundExtended,
	39: StyleForegroundDefault,
	40: StyleBackgroundBlack, 41: StyleBackgroundRed, 42: StyleBackgroundGreen,
	43: StyleBackgroundYellow, 44: StyleBackgroundBlue, 45: StyleBackgroundMagenta,
	46: StyleBackgroundCyan, 47: StyleBackgroundWhite, 48: StyleBackgroundExtended,
	49: StyleBackgroundDefault,
	90: StyleBrightForegroundBlack, 91: StyleBrightForegroundRed, 92: StyleBrightForegroundGreen,
	93: StyleBrightForegroundYellow, 94: StyleBrightForegroundBlue, 95: StyleBrightForegroundMagenta,
	96: StyleBrightForegroundCyan, 97: StyleBrightForegroundWhite,
	100: StyleBrightBackgroundBlack, 101: StyleBrightBackgroundRed, 102: StyleBrightBackgroundGreen,
	103: StyleBrightBackgroundYellow, 104: StyleBrightBackgroundBlue, 105: StyleBrightBackgroundMagenta,
	106: StyleBrightBackgroundCyan, 107: StyleBrightBackgroundWhite,
}

func graphicStyleFromInt(v int) (GraphicStyle, bool) {
	s, ok := graphicStyleByCode[v]
	return s, ok
}

// MouseTrackingMode selects which button/motion events get reported,
// supplementing the reference's disabled mouse-tracking arms per
// SPEC_FULL.md section 4.6.
type MouseTrackingMode int

const (
	MouseTrackingOff MouseTrackingMode = iota
	MouseTrackingX10
	MouseTrackingNormal
	MouseTrackingButtonEvent
	MouseTrackingAnyEvent
)

// MouseEncoding selects how mouse-tracking reports are framed on the wire,
// supplementing the reference's stubbed UTF8 mouse format per SPEC_FULL.md
// section 4.6.
type MouseEncoding int

const (
	MouseEncodingDefault MouseEncoding = iota
	MouseEncodingUtf8
	MouseEncodingSgr
)

// WindowAction mirrors misc.rs's WindowAction (CSI t window manipulation).
type WindowAction int

const (
	WindowActionIconify WindowAction = iota
	WindowActionMove
	WindowActionResize
	WindowActionSendToFront
	WindowActionSendToBack
	WindowActionRefresh
	WindowActionResizeTextArea
	WindowActionRestoreMaximised
	WindowActionMaximise
	WindowActionSetFullscreen
	WindowActionToggleFullscreen
	WindowActionReportWindowState
	WindowActionReportWindowPosition
	WindowActionReportTextAreaPosition
	WindowActionReportTextAreaSize
	WindowActionReportWindowSize
	WindowActionReportScreenSize
	WindowActionReportCellSize
	WindowActionReportTextAreaGridSize
	WindowActionReportScreenGridSize
	WindowActionReportWindowIconLabel
	WindowActionReportWindowTitle
	WindowActionSaveIconTitle
	WindowActionSaveWindowTitle
	WindowActionRestoreIconTitle
	WindowActionRestoreWindowTitle
	WindowActionResizeWindowHeight
)

// ScreenMode mirrors screen_mode.rs's ScreenMode (DEC private mode screen
// resolutions, set/reset via CSI = Ps h / CSI = Ps l).
type ScreenMode struct {
	Size        Vector2
	ColourMode  ColourMode
	GraphicsMode GraphicsMode
}

type ColourMode int

const (
	ColourMonochrome ColourMode = iota
	ColourColour
	ColourColour2bit
	ColourColour4bit
	ColourColour8bit
)

type GraphicsMode int

const (
	GraphicsText GraphicsMode = iota
	GraphicsGraphics
)

func screenModeFromInt(code int) (ScreenMode, bool) {
	mk := func(x, y int, cm ColourMode, gm GraphicsMode) ScreenMode {
		return ScreenMode{Size: Vector2{X: x, Y: y}, ColourMode: cm, GraphicsMode: gm}
	}
	switch code {
	case 0:
		return mk(40, 25, ColourMonochrome, GraphicsText), true
	case 1:
		return mk(40, 25, ColourColour, GraphicsText), true
	case 2:
		return mk(80, 25, ColourMonochrome, GraphicsText), true
	case 3:
		return mk(80, 25, ColourColour, GraphicsText), true
	case 4:
		return mk(320, 200, ColourColour2bit, GraphicsGraphics), true
	case 5:
		return mk(320, 200, ColourMonochrome, GraphicsGraphics), true
	case 6:
		return mk(640, 200, ColourMonochrome, GraphicsGraphics), true
	case 13:
		return mk(320, 200, ColourColour, GraphicsGraphics), true
	case 14:
		return mk(640, 200, ColourColour4bit, GraphicsGraphics), true
	case 15:
		return mk(640, 350, ColourMonochrome, GraphicsGraphics), true
	case 16:
		return mk(640, 350, ColourColour4bit, GraphicsGraphics), true
	case 17:
		return mk(640, 480, ColourMonochrome, GraphicsGraphics), true
	case 18:
		return mk(640, 480, ColourColour4bit, GraphicsGraphics), true
	case 19:
		return mk(320, 200, ColourColour8bit, GraphicsGraphics), true
	default:
		return ScreenMode{}, false
	}
}

// Command is the value the VT100 sub-parser emits for every recognised
// escape/control sequence. Only the fields relevant to Kind are populated;
// the rest hold their zero value.
type Command struct {
	Kind CommandKind

	N        int // generic repeat count / numeric parameter
	Position Vector2
	Erase    EraseMode
	Styles   []GraphicStyle
	ColourIndex int
	Rgb      Rgb8
	Mode     InputMode
	CharSet  CharacterSet
	CursorStyle CursorStyle
	Region   *ScrollRegion // nil means "remove the scroll region" for CmdSetScrollRegion
	Title    []byte
	HyperlinkTag  []byte
	HyperlinkLink []byte
	ScreenMode    ScreenMode
	MouseTracking MouseTrackingMode
	MouseEncoding MouseEncoding
	Window   WindowAction
	WindowVec Vector2
	WindowBool bool
}

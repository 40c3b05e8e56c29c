package feature

// Kind tags a feature model type.
type Kind string

const (
	KindToggle         Kind = "toggle"
	KindFullController Kind = "full_controller"
	KindSocket         Kind = "socket"
	KindGestureDriver  Kind = "gesture_driver"
	KindMoveObject     Kind = "move_object"
)

// Current schema version of each kind.
var currentVersions = map[Kind]int{
	KindToggle:         3,
	KindFullController: 2,
	KindSocket:         1,
	KindGestureDriver:  1,
	KindMoveObject:     1,
}

// CurrentVersion returns the schema version this build understands for a kind.
func CurrentVersion(k Kind) (int, bool) {
	v, ok := currentVersions[k]
	return v, ok
}

// Kinds lists every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindToggle, KindFullController, KindSocket, KindGestureDriver, KindMoveObject}
}

// Model is a feature configuration. The concrete types are listed in the package doc.
type Model interface {
	Kind() Kind
	isModel()
}

// Toggle is a menu-driven on/off (or slider) switch of a State.
type Toggle struct {
	// Name is the menu path, e.g. "Clothes/Hat".
	Name      string `mapstructure:"name"`
	State     State  `mapstructure:"state"`
	DefaultOn bool   `mapstructure:"default_on"`
	Saved     bool   `mapstructure:"saved"`
	// Slider turns the toggle into a radial puppet blending from off to State.
	Slider        bool    `mapstructure:"slider"`
	SliderDefault float64 `mapstructure:"slider_default"`
	HoldButton    bool    `mapstructure:"hold_button"`
	// GlobalParam drives the toggle from an existing parameter instead of a generated one.
	GlobalParam    string   `mapstructure:"global_param"`
	ExclusiveTags  []string `mapstructure:"exclusive_tags"`
	ResetPhysbones []string `mapstructure:"reset_physbones"`
	TransitionTime float64  `mapstructure:"transition_time"`
}

// ControllerRef names an authored library controller.
type ControllerRef struct {
	Name string `mapstructure:"name"`
}

// MenuRef names an authored library menu and where to mount it.
type MenuRef struct {
	Name   string `mapstructure:"name"`
	Prefix string `mapstructure:"prefix"`
}

// FullController imports authored controllers, menus and parameter sets.
type FullController struct {
	Controllers []ControllerRef `mapstructure:"controllers"`
	Menus       []MenuRef       `mapstructure:"menus"`
	Params      []string        `mapstructure:"params"`
	// GlobalParams keep their name; "*" keeps every name.
	GlobalParams []string `mapstructure:"global_params"`
	// RootObject is the path clips are authored against; the owner when empty.
	RootObject string `mapstructure:"root_object"`
}

// IsGlobal reports whether a parameter keeps its authored name.
func (f FullController) IsGlobal(param string) bool {
	for _, g := range f.GlobalParams {
		if g == "*" || g == param {
			return true
		}
	}
	return false
}

// DepthAction blends a State in as something enters a socket.
type DepthAction struct {
	State State `mapstructure:"state"`
	// MinDepth and MaxDepth bound the penetration depth (in socket radii) mapped to 0..1.
	MinDepth  float64 `mapstructure:"min_depth"`
	MaxDepth  float64 `mapstructure:"max_depth"`
	Smoothing float64 `mapstructure:"smoothing"`
	// Directional only activates when entering from the front.
	Directional bool `mapstructure:"directional"`
}

// Socket is a haptic socket: contact receivers plus depth- and presence-driven actions.
type Socket struct {
	Name         string        `mapstructure:"name"`
	Object       string        `mapstructure:"object"`
	Radius       float64       `mapstructure:"radius"`
	DepthActions []DepthAction `mapstructure:"depth_actions"`
	ActiveActions State        `mapstructure:"active_actions"`
	EnableToggle bool          `mapstructure:"enable_toggle"`
}

// Hand selects which hand(s) a gesture reads.
type Hand int

const (
	HandLeft Hand = iota
	HandRight
	HandEither
	HandCombo
)

func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	case HandEither:
		return "either"
	case HandCombo:
		return "combo"
	default:
		return "hand"
	}
}

// Gesture maps a hand sign to a State.
type Gesture struct {
	Hand Hand `mapstructure:"hand"`
	Sign int  `mapstructure:"sign"`
	// ComboSign is the other hand's sign when Hand is HandCombo.
	ComboSign      int     `mapstructure:"combo_sign"`
	State          State   `mapstructure:"state"`
	TransitionTime float64 `mapstructure:"transition_time"`
	// EnableWeight blends the State by trigger pressure instead of switching it.
	EnableWeight       bool    `mapstructure:"enable_weight"`
	WeightSmoothing    float64 `mapstructure:"weight_smoothing"`
	EnableLockMenuItem bool    `mapstructure:"enable_lock_menu_item"`
	LockMenuItem       string  `mapstructure:"lock_menu_item"`
}

// DefaultGestureTransition is used when a gesture leaves TransitionTime unset.
const DefaultGestureTransition = 0.1

// GestureDriver maps hand gestures to states, one layer per driver.
type GestureDriver struct {
	Gestures []Gesture `mapstructure:"gestures"`
}

// MoveObject reparents an object in the built avatar.
type MoveObject struct {
	Object    string `mapstructure:"object"`
	NewParent string `mapstructure:"new_parent"`
}

// Unknown is a record this build cannot compile: an unregistered kind, or a
// version newer than CurrentVersion (Future).
type Unknown struct {
	Type    string
	Version int
	Raw     map[string]any
	Future  bool
}

func (Toggle) Kind() Kind         { return KindToggle }
func (FullController) Kind() Kind { return KindFullController }
func (Socket) Kind() Kind         { return KindSocket }
func (GestureDriver) Kind() Kind  { return KindGestureDriver }
func (MoveObject) Kind() Kind     { return KindMoveObject }
func (u Unknown) Kind() Kind      { return Kind(u.Type) }

func (Toggle) isModel()         {}
func (FullController) isModel() {}
func (Socket) isModel()         {}
func (GestureDriver) isModel()  {}
func (MoveObject) isModel()     {}
func (Unknown) isModel()        {}

// Instance is one occurrence of a model on a scene object.
type Instance struct {
	Model Model
	// Owner is the owning object's path from the avatar root ("" for the root).
	Owner string
	// Index is the declaration order across the whole avatar.
	Index int
}

// Name identifies the instance in logs and errors.
func (i Instance) Name() string {
	owner := i.Owner
	if owner == "" {
		owner = "(root)"
	}
	label := string(i.Model.Kind())
	if t, ok := i.Model.(Toggle); ok && t.Name != "" {
		label += " " + t.Name
	}
	if s, ok := i.Model.(Socket); ok && s.Name != "" {
		label += " " + s.Name
	}
	return label + " on " + owner
}

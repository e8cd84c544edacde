package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Category identifies one of the seven tracked device types.
type Category string

const (
	CategoryMac        Category = "Mac"
	CategoryIPhone     Category = "iPhone"
	CategoryIPad       Category = "iPad"
	CategoryAppleWatch Category = "Apple Watch"
	CategoryAirPods    Category = "AirPods"
	CategoryAppleTV    Category = "Apple TV"
	CategoryIPod       Category = "iPod"
)

// Categories returns all categories in canonical display order.
func Categories() []Category {
	return []Category{
		CategoryMac,
		CategoryIPhone,
		CategoryIPad,
		CategoryAppleWatch,
		CategoryAirPods,
		CategoryAppleTV,
		CategoryIPod,
	}
}

// ParseCategory maps a string to a known category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the seven known categories.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// KeyPrefix returns the persistence key prefix for the category.
func (c Category) KeyPrefix() string {
	switch c {
	case CategoryMac:
		return "mac"
	case CategoryIPhone:
		return "iphone"
	case CategoryIPad:
		return "ipad"
	case CategoryAppleWatch:
		return "watch"
	case CategoryAirPods:
		return "airpods"
	case CategoryAppleTV:
		return "appletv"
	case CategoryIPod:
		return "ipod"
	}
	return "unknown"
}

// NewID generates a record ID of the form "<category-prefix>_<uuid>".
func NewID(c Category) string {
	return c.KeyPrefix() + "_" + uuid.NewString()
}

// MacSpec holds the Mac-specific attributes.
type MacSpec struct {
	FormFactor     string `json:"form_factor,omitempty"` // laptop, desktop, all-in-one
	ScreenSize     string `json:"screen_size,omitempty"`
	Processor      string `json:"processor,omitempty"`
	Storage        string `json:"storage,omitempty"`
	Memory         string `json:"memory,omitempty"`
	ActivationLock bool   `json:"activation_lock,omitempty"`
}

// IPhoneSpec holds the iPhone-specific attributes.
type IPhoneSpec struct {
	Storage        string `json:"storage,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	ESNStatus      string `json:"esn_status,omitempty"` // clean, blocked, unknown
	CarrierLock    string `json:"carrier_lock,omitempty"`
	ActivationLock bool   `json:"activation_lock,omitempty"`
}

// IPadSpec holds the iPad-specific attributes.
type IPadSpec struct {
	Storage        string `json:"storage,omitempty"`
	Connectivity   string `json:"connectivity,omitempty"` // wifi, wifi+cellular
	ActivationLock bool   `json:"activation_lock,omitempty"`
}

// WatchSpec holds the Apple Watch-specific attributes.
type WatchSpec struct {
	CaseSize       string `json:"case_size,omitempty"`
	CaseMaterial   string `json:"case_material,omitempty"`
	BandType       string `json:"band_type,omitempty"`
	ActivationLock bool   `json:"activation_lock,omitempty"`
}

// AirPodsSpec holds the AirPods-specific attributes.
type AirPodsSpec struct {
	CaseType string `json:"case_type,omitempty"` // wired, wireless, MagSafe
}

// AppleTVSpec holds the Apple TV-specific attributes.
type AppleTVSpec struct {
	Storage        string `json:"storage,omitempty"`
	RemoteIncluded bool   `json:"remote_included,omitempty"`
}

// IPodSpec holds the iPod-specific attributes.
type IPodSpec struct {
	Storage string `json:"storage,omitempty"`
}

// ProductRecord is one owned device. ID and Category are immutable after
// creation. Exactly one spec pointer is set, and it must match Category;
// the other pointers stay nil.
type ProductRecord struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`

	// Model is the catalog name. When it is the category's override
	// sentinel ("Other" / "Earlier Models"), CustomModel carries the
	// user-entered name.
	Model       string `json:"model"`
	CustomModel string `json:"custom_model,omitempty"`

	Color          string `json:"color,omitempty"`
	YearAcquired   int    `json:"year_acquired,omitempty"`
	EstimatedValue int    `json:"estimated_value,omitempty"` // whole currency units
	WorkingStatus  string `json:"working_status,omitempty"`  // working, partially working, not working
	Condition      string `json:"condition,omitempty"`
	AcquiredAs     string `json:"acquired_as,omitempty"` // new, used, gift
	Warranty       string `json:"warranty,omitempty"`
	PhysicalDamage bool   `json:"physical_damage,omitempty"`
	OriginalBox    bool   `json:"original_box,omitempty"`
	Comments       string `json:"comments,omitempty"`

	Mac     *MacSpec     `json:"mac,omitempty"`
	IPhone  *IPhoneSpec  `json:"iphone,omitempty"`
	IPad    *IPadSpec    `json:"ipad,omitempty"`
	Watch   *WatchSpec   `json:"watch,omitempty"`
	AirPods *AirPodsSpec `json:"airpods,omitempty"`
	AppleTV *AppleTVSpec `json:"appletv,omitempty"`
	IPod    *IPodSpec    `json:"ipod,omitempty"`
}

// DisplayModel resolves the free-text override for sentinel models.
func (r *ProductRecord) DisplayModel() string {
	if IsOverrideModel(r.Model) && r.CustomModel != "" {
		return r.CustomModel
	}
	return r.Model
}

// Normalize clears spec pointers that do not belong to the record's
// category and fills in an empty spec when the matching one is missing.
// Returns an error for an unknown category.
func (r *ProductRecord) Normalize() error {
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}

	mac, iphone, ipad, watch, airpods, appletv, ipod := r.Mac, r.IPhone, r.IPad, r.Watch, r.AirPods, r.AppleTV, r.IPod
	r.Mac, r.IPhone, r.IPad, r.Watch, r.AirPods, r.AppleTV, r.IPod = nil, nil, nil, nil, nil, nil, nil

	switch r.Category {
	case CategoryMac:
		if mac == nil {
			mac = &MacSpec{}
		}
		r.Mac = mac
	case CategoryIPhone:
		if iphone == nil {
			iphone = &IPhoneSpec{}
		}
		r.IPhone = iphone
	case CategoryIPad:
		if ipad == nil {
			ipad = &IPadSpec{}
		}
		r.IPad = ipad
	case CategoryAppleWatch:
		if watch == nil {
			watch = &WatchSpec{}
		}
		r.Watch = watch
	case CategoryAirPods:
		if airpods == nil {
			airpods = &AirPodsSpec{}
		}
		r.AirPods = airpods
	case CategoryAppleTV:
		if appletv == nil {
			appletv = &AppleTVSpec{}
		}
		r.AppleTV = appletv
	case CategoryIPod:
		if ipod == nil {
			ipod = &IPodSpec{}
		}
		r.IPod = ipod
	}
	return nil
}

// Clone returns a deep copy of the record.
func (r *ProductRecord) Clone() *ProductRecord {
	cp := *r
	if r.Mac != nil {
		v := *r.Mac
		cp.Mac = &v
	}
	if r.IPhone != nil {
		v := *r.IPhone
		cp.IPhone = &v
	}
	if r.IPad != nil {
		v := *r.IPad
		cp.IPad = &v
	}
	if r.Watch != nil {
		v := *r.Watch
		cp.Watch = &v
	}
	if r.AirPods != nil {
		v := *r.AirPods
		cp.AirPods = &v
	}
	if r.AppleTV != nil {
		v := *r.AppleTV
		cp.AppleTV = &v
	}
	if r.IPod != nil {
		v := *r.IPod
		cp.IPod = &v
	}
	return &cp
}

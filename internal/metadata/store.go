package metadata

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrEmptyStore is returned when a store would hold no region at all.
var ErrEmptyStore = errors.New("metadata: no regions")

// Store is an immutable snapshot of numbering plan metadata, indexed by region
// code and by country calling code. It is safe for concurrent use.
type Store struct {
	version       string
	regions       map[string]*RegionMetadata
	nonGeo        map[int]*RegionMetadata
	byCallingCode map[int][]string
}

// NewStore compiles records and indexes them. Records sharing a calling code
// must mark exactly one of them as the main region; it is listed first for
// that code, the others keep their input order. The records are owned by the
// store afterwards and must not be modified.
func NewStore(version string, records []*RegionMetadata) (*Store, error) {
	if len(records) == 0 {
		return nil, ErrEmptyStore
	}

	s := &Store{
		version:       version,
		regions:       make(map[string]*RegionMetadata, len(records)),
		nonGeo:        make(map[int]*RegionMetadata),
		byCallingCode: make(map[int][]string),
	}

	mains := make(map[int]string)
	for _, rec := range records {
		rec.RegionCode = strings.ToUpper(strings.TrimSpace(rec.RegionCode))
		if err := rec.compile(); err != nil {
			return nil, fmt.Errorf("metadata: region %s: %w", rec.RegionCode, err)
		}

		cc := rec.CountryCallingCode
		if rec.IsNonGeographical() {
			if _, dup := s.nonGeo[cc]; dup {
				return nil, fmt.Errorf("metadata: duplicate global network code %d", cc)
			}
			s.nonGeo[cc] = rec
			s.byCallingCode[cc] = append(s.byCallingCode[cc], NonGeoRegion)
			continue
		}

		if len(rec.RegionCode) != 2 {
			return nil, fmt.Errorf("metadata: invalid region code %q", rec.RegionCode)
		}
		if _, dup := s.regions[rec.RegionCode]; dup {
			return nil, fmt.Errorf("metadata: duplicate region %s", rec.RegionCode)
		}
		s.regions[rec.RegionCode] = rec
		s.byCallingCode[cc] = append(s.byCallingCode[cc], rec.RegionCode)

		if rec.MainCountryForCode {
			if other, dup := mains[cc]; dup {
				return nil, fmt.Errorf("metadata: calling code %d has two main regions (%s, %s)", cc, other, rec.RegionCode)
			}
			mains[cc] = rec.RegionCode
		}
	}

	for cc, codes := range s.byCallingCode {
		if len(codes) < 2 {
			continue
		}
		if slices.Contains(codes, NonGeoRegion) {
			return nil, fmt.Errorf("metadata: global network code %d shared with a region", cc)
		}
		main, ok := mains[cc]
		if !ok {
			return nil, fmt.Errorf("metadata: calling code %d is shared by %v but has no main region", cc, codes)
		}
		ordered := make([]string, 0, len(codes))
		ordered = append(ordered, main)
		for _, code := range codes {
			if code != main {
				ordered = append(ordered, code)
			}
		}
		s.byCallingCode[cc] = ordered
	}

	return s, nil
}

// Version identifies the metadata snapshot; it is part of memoisation keys.
func (s *Store) Version() string {
	return s.version
}

// Region returns the metadata of a region code, or nil if it is unknown.
// Region codes are matched case-insensitively. NonGeoRegion is not a region.
func (s *Store) Region(regionCode string) *RegionMetadata {
	return s.regions[strings.ToUpper(regionCode)]
}

// IsSupportedRegion reports whether regionCode names a region of the store.
func (s *Store) IsSupportedRegion(regionCode string) bool {
	return s.Region(regionCode) != nil
}

// NonGeographical returns the metadata of a global network calling code.
func (s *Store) NonGeographical(callingCode int) *RegionMetadata {
	return s.nonGeo[callingCode]
}

// ForRegionOrCallingCode returns the non-geographical record of callingCode
// when regionCode is NonGeoRegion, and the region's record otherwise.
func (s *Store) ForRegionOrCallingCode(callingCode int, regionCode string) *RegionMetadata {
	if regionCode == NonGeoRegion {
		return s.NonGeographical(callingCode)
	}
	return s.Region(regionCode)
}

// HasCallingCode reports whether any region or global network uses callingCode.
func (s *Store) HasCallingCode(callingCode int) bool {
	_, ok := s.byCallingCode[callingCode]
	return ok
}

// RegionsForCallingCode lists the regions using callingCode, main region
// first. The slice must not be modified.
func (s *Store) RegionsForCallingCode(callingCode int) []string {
	return s.byCallingCode[callingCode]
}

// MainRegionForCallingCode returns the main region of callingCode, or "" when
// the code is unknown.
func (s *Store) MainRegionForCallingCode(callingCode int) string {
	codes := s.byCallingCode[callingCode]
	if len(codes) == 0 {
		return ""
	}
	return codes[0]
}

// CallingCodeForRegion returns the calling code of a region, or 0 when the
// region is unknown.
func (s *Store) CallingCodeForRegion(regionCode string) int {
	md := s.Region(regionCode)
	if md == nil {
		return 0
	}
	return md.CountryCallingCode
}

// SupportedRegions lists every region code, sorted.
func (s *Store) SupportedRegions() []string {
	codes := make([]string, 0, len(s.regions))
	for code := range s.regions {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GlobalNetworkCallingCodes lists the non-geographical calling codes, sorted.
func (s *Store) GlobalNetworkCallingCodes() []int {
	codes := make([]int, 0, len(s.nonGeo))
	for cc := range s.nonGeo {
		codes = append(codes, cc)
	}
	slices.Sort(codes)
	return codes
}

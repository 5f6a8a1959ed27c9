package model

import "time"

// Beach is a row of the public beach catalogue. It is read-only for the API.
type Beach struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Slug                 string    `gorm:"type:varchar(255);uniqueIndex:idx_beaches_slug;not null" json:"slug"`
	CoverURL             string    `gorm:"column:cover_url;type:varchar(255);not null" json:"coverUrl"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	Island               string    `gorm:"type:varchar(255);not null" json:"island"`
	Municipality         string    `gorm:"type:varchar(255);not null" json:"municipality"`
	Province             string    `gorm:"type:varchar(255);not null" json:"province"`
	AccessByCar          bool      `gorm:"not null" json:"accessByCar"`
	AccessByFoot         *string   `gorm:"type:varchar(255)" json:"accessByFoot"`
	AccessByShip         bool      `gorm:"not null" json:"accessByShip"`
	AdaptedShower        bool      `gorm:"not null" json:"adaptedShower"`
	AnnualMaxOccupancy   string    `gorm:"type:varchar(255);not null" json:"annualMaxOccupancy"`
	AssistedBathing      bool      `gorm:"not null" json:"assistedBathing"`
	BathingConditions    string    `gorm:"type:varchar(255);not null" json:"bathingConditions"`
	Classification       string    `gorm:"type:varchar(255);not null" json:"classification"`
	EnvironmentCondition string    `gorm:"type:varchar(255);not null" json:"environmentCondition"`
	BlueFlag             bool      `gorm:"not null" json:"blueFlag"`
	HasAdaptedShowers    bool      `gorm:"not null" json:"hasAdaptedShowers"`
	HasCobbles           bool      `gorm:"not null" json:"hasCobbles"`
	HasConcrete          bool      `gorm:"not null" json:"hasConcrete"`
	HasFootShowers       bool      `gorm:"not null" json:"hasFootShowers"`
	HasGravel            bool      `gorm:"not null" json:"hasGravel"`
	HasMixedComposition  bool      `gorm:"not null" json:"hasMixedComposition"`
	HasPebbles           bool      `gorm:"not null" json:"hasPebbles"`
	HasRock              bool      `gorm:"not null" json:"hasRock"`
	HasSand              bool      `gorm:"not null" json:"hasSand"`
	HasShowers           bool      `gorm:"not null" json:"hasShowers"`
	HasToilets           bool      `gorm:"not null" json:"hasToilets"`
	IsBeach              bool      `gorm:"not null" json:"isBeach"`
	IsWindy              bool      `gorm:"not null" json:"isWindy"`
	IsZbm                bool      `gorm:"not null" json:"isZbm"`
	KidsArea             bool      `gorm:"not null" json:"kidsArea"`
	LastUpdate           time.Time `gorm:"not null;default:now()" json:"lastUpdate"`
	Latitude             float32   `gorm:"type:real;not null" json:"latitude"`
	Longitude            float32   `gorm:"type:real;not null" json:"longitude"`
	Length               int       `gorm:"not null" json:"length"`
	Width                int       `gorm:"not null" json:"width"`
	LifeguardService     string    `gorm:"type:varchar(255);not null" json:"lifeguardService"`
	PmrShade             bool      `gorm:"not null" json:"pmrShade"`
	ProtectionLevel      string    `gorm:"type:varchar(255);not null" json:"protectionLevel"`
	RiskLevel            string    `gorm:"type:varchar(255);not null" json:"riskLevel"`
	SandColor            string    `gorm:"type:varchar(255);not null" json:"sandColor"`
	SportsArea           bool      `gorm:"not null" json:"sportsArea"`
	SunbedRentals        bool      `gorm:"not null" json:"sunbedRentals"`
	UmbrellaRentals      bool      `gorm:"not null" json:"umbrellaRentals"`
	WaterSportsRentals   bool      `gorm:"not null" json:"waterSportsRentals"`
	WheelchairAccess     bool      `gorm:"not null" json:"wheelchairAccess"`
}

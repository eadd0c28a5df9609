package models

// SocialLinks holds the public social profiles shown in the site footer.
type SocialLinks struct {
	Whatsapp  string `json:"whatsapp" bson:"whatsapp"`
	Instagram string `json:"instagram" bson:"instagram"`
	Facebook  string `json:"facebook" bson:"facebook"`
}

// SiteConfig is the singleton branding/payment document (collection "config", id "main").
type SiteConfig struct {
	ID               string      `json:"id" bson:"id"`
	SalonName        string      `json:"salonName" bson:"salonName"`
	Tagline          string      `json:"tagline" bson:"tagline"`
	LogoURL          string      `json:"logoUrl" bson:"logoUrl"`
	HeroImageURL     string      `json:"heroImageUrl" bson:"heroImageUrl"`
	ContactNumber    string      `json:"contactNumber" bson:"contactNumber"`
	Email            string      `json:"email" bson:"email"`
	Address          string      `json:"address" bson:"address"`
	FounderName      string      `json:"founderName" bson:"founderName"`
	FounderImageURL  string      `json:"founderImageUrl" bson:"founderImageUrl"`
	ThemeColor       string      `json:"themeColor" bson:"themeColor"`
	QRCodeURL        string      `json:"qrCodeUrl" bson:"qrCodeUrl"`
	UpiID            string      `json:"upiId" bson:"upiId"`
	MissionStatement string      `json:"missionStatement" bson:"missionStatement"`
	PromoBannerText  string      `json:"promoBannerText" bson:"promoBannerText"`
	SocialLinks      SocialLinks `json:"socialLinks" bson:"socialLinks"`
}

type Service struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Category    string  `json:"category" bson:"category"`
	Price       float64 `json:"price" bson:"price"`
	Duration    string  `json:"duration" bson:"duration"`
	Image       string  `json:"image" bson:"image"`
	Description string  `json:"description" bson:"description"`
}

type Product struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category" bson:"category"`
	Image       string  `json:"image" bson:"image"`
	Description string  `json:"description" bson:"description"`
	Stock       int     `json:"stock" bson:"stock"`
}

// Offer is a promotional bookable item; price fields are optional.
type Offer struct {
	ID            string  `json:"id" bson:"id"`
	Title         string  `json:"title" bson:"title"`
	Description   string  `json:"description" bson:"description"`
	DiscountCode  string  `json:"discountCode" bson:"discountCode"`
	DiscountValue string  `json:"discountValue,omitempty" bson:"discountValue,omitempty"`
	ValidUntil    string  `json:"validUntil" bson:"validUntil"`
	Image         string  `json:"image,omitempty" bson:"image,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	FinalPrice    float64 `json:"finalPrice,omitempty" bson:"finalPrice,omitempty"`
}

type TeamMember struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Role  string `json:"role" bson:"role"`
	Bio   string `json:"bio" bson:"bio"`
	Image string `json:"image" bson:"image"`
}

type GalleryItem struct {
	ID       string `json:"id" bson:"id"`
	ImageURL string `json:"imageUrl" bson:"imageUrl"`
	Caption  string `json:"caption" bson:"caption"`
	Category string `json:"category" bson:"category"`
}

type CustomPage struct {
	ID      string `json:"id" bson:"id"`
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
}

type Review struct {
	ID       string `json:"id" bson:"id"`
	UserID   string `json:"userId" bson:"userId"`
	UserName string `json:"userName" bson:"userName"`
	Rating   int    `json:"rating" bson:"rating"`
	Comment  string `json:"comment" bson:"comment"`
	Date     string `json:"date" bson:"date"`
}

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// User is looked up strictly by exact match on Mobile. Password holds a bcrypt
// hash, never the plain text.
type User struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Mobile   string `json:"mobile" bson:"mobile"`
	Email    string `json:"email" bson:"email"`
	Address  string `json:"address" bson:"address"`
	Role     string `json:"role" bson:"role"`
	Password string `json:"-" bson:"password,omitempty"`
}

type Booking struct {
	ID          string `json:"id" bson:"id"`
	UserID      string `json:"userId" bson:"userId"`
	UserName    string `json:"userName" bson:"userName"`
	UserMobile  string `json:"userMobile" bson:"userMobile"`
	UserAddress string `json:"userAddress" bson:"userAddress"`
	ServiceID   string `json:"serviceId" bson:"serviceId"`
	ServiceName string `json:"serviceName" bson:"serviceName"`
	Date        string `json:"date" bson:"date"`
	Time        string `json:"time" bson:"time"`
	Status      string `json:"status" bson:"status"`
	StatusNote  string `json:"statusNote,omitempty" bson:"statusNote,omitempty"`
	Amount      float64 `json:"amount,omitempty" bson:"amount,omitempty"`
	Timestamp   int64  `json:"timestamp" bson:"timestamp"`
}

// CartItem is a point-in-time copy of a Product plus quantity; it is never a
// live reference back into the catalog.
type CartItem struct {
	Product  `bson:",inline"`
	Quantity int `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID          string     `json:"id" bson:"id"`
	UserID      string     `json:"userId" bson:"userId"`
	UserName    string     `json:"userName" bson:"userName"`
	UserMobile  string     `json:"userMobile" bson:"userMobile"`
	UserAddress string     `json:"userAddress" bson:"userAddress"`
	Items       []CartItem `json:"items" bson:"items"`
	TotalAmount float64    `json:"totalAmount" bson:"totalAmount"`
	Status      string     `json:"status" bson:"status"`
	StatusNote  string     `json:"statusNote,omitempty" bson:"statusNote,omitempty"`
	Date        string     `json:"date" bson:"date"`
	Timestamp   int64      `json:"timestamp" bson:"timestamp"`
}

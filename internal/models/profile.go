package models

type PaymentType string

const (
	PayGopay     PaymentType = "gopay"
	PayOVO       PaymentType = "ovo"
	PayShopeePay PaymentType = "shopeepay"
)

func (p PaymentType) Valid() bool {
	switch p {
	case PayGopay, PayOVO, PayShopeePay:
		return true
	}
	return false
}

type PaymentMethod struct {
	ID            string      `json:"-"`
	UserID        string      `json:"-"`
	PaymentType   PaymentType `json:"payment_type"`
	AccountNumber string      `json:"account_number"`
}

type BankDetail struct {
	ID            string `json:"-"`
	UserID        string `json:"-"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
}

// Profile is the aggregate returned by GET /api/user/profile.
type Profile struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	AvatarID       int             `json:"avatar_id"`
	Bio            string          `json:"bio"`
	FriendsCount   int             `json:"friends_count"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	BankDetails    []BankDetail    `json:"bank_details"`
}

package auth

import (
	"log"
	"time"

	"lotoria/rdx"
	"lotoria/utils"
)

const otpTTL = 5 * time.Minute

// issueOTP generates a short numeric code for a mobile number and stores it in
// redis with a TTL. Delivery over an SMS gateway is out of scope here, so the
// code is written to the server log instead.
func issueOTP(mobile string) error {
	otp := utils.GenerateRandomDigitString(4)
	if err := rdx.RdxSet("otp:"+mobile, otp, otpTTL); err != nil {
		return err
	}
	log.Printf("OTP for %s: %s", mobile, otp)
	return nil
}

// verifyOTP checks a submitted code against the stored one and consumes it.
func verifyOTP(mobile, otp string) bool {
	stored, err := rdx.RdxGet("otp:" + mobile)
	if err != nil || stored == "" || stored != otp {
		return false
	}
	if err := rdx.RdxDel("otp:" + mobile); err != nil {
		log.Println("otp cleanup failed:", err)
	}
	return true
}

package utils

import "golang.org/x/crypto/bcrypt"

// 旧系统存量口令也是默认 cost，改动会让历史哈希校验不一致
const bcryptCost = bcrypt.DefaultCost

// HashPassword bcrypt 哈希；入参超长等异常场景返回空串，由调用方的登录校验兜底
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	return string(b)
}

// CheckPassword 明文与哈希比对
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

package awsparse

import (
	"fmt"
	"strconv"
	"strings"
)

const MAX_AWS_ACCOUNTID = 999999999999

// ParseAssumedRoleARN parses the STS ARN of an assumed role session:
// arn:aws:sts::XXXXXXXXXXXX:assumed-role/YYYYYYYY/ZZZZZZZZ
func ParseAssumedRoleARN(arn string) (string, string, string, error) {
	s := strings.Split(arn, ":")
	if len(s) != 6 || s[0] != "arn" || s[2] != "sts" {
		return "", "", "", fmt.Errorf("unable to parse ARN: %s", arn)
	}

	accountId, err := NormalizeAccountId(s[4])
	if err != nil {
		return "", "", "", fmt.Errorf("unable to parse ARN: %s", arn)
	}

	r := strings.Split(s[5], "/")
	if len(r) != 3 || r[0] != "assumed-role" || r[1] == "" {
		return "", "", "", fmt.Errorf("unable to parse ARN: %s", arn)
	}
	return accountId, r[1], r[2], nil
}

// MakeRoleARN creates an IAM Role ARN using a string for the account and role
func MakeRoleARN(account, name string) string {
	a, err := NormalizeAccountId(account)
	if err != nil {
		a = account
	}
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", a, name)
}

// NormalizeAccountId returns the 12 digit form of an AWS AccountID
func NormalizeAccountId(a string) (string, error) {
	x, err := AccountIdToInt64(a)
	if err != nil {
		return "", err
	}
	return AccountIdToString(x)
}

// AccountIdToString returns a string version of AWS AccountID with leading zeroes
func AccountIdToString(a int64) (string, error) {
	if a < 0 || a > MAX_AWS_ACCOUNTID {
		return "", fmt.Errorf("invalid AWS AccountId: %d", a)
	}
	return fmt.Sprintf("%012d", a), nil
}

// AccountIdToInt64 returns an int64 version of AWS AccountID in base10
func AccountIdToInt64(a string) (int64, error) {
	var x int64
	var err error

	if strings.Contains(a, "e+") {
		// AWS AccountID is in scientific notation
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid AWS AccountId: %s", a)
		}
		x = int64(f)
	} else {
		x, err = strconv.ParseInt(a, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid AWS AccountId: %s", a)
		}
	}
	if x < 0 || x > MAX_AWS_ACCOUNTID {
		return 0, fmt.Errorf("invalid AWS AccountId: %s", a)
	}
	return x, nil
}

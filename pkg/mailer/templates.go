package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// ReminderMember is one row of the expiry digest sent to a gym owner.
type ReminderMember struct {
	Name          string
	Phone         string
	MembershipEnd time.Time
}

var signupOTPTmpl = template.Must(template.New("signup_otp").Parse(`
<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f5;">
  <div style="max-width:600px;margin:0 auto;padding:32px 20px;">
    <h1 style="font-size:24px;color:#18181b;margin:0 0 8px 0;">{{.AppName}}</h1>
    <div style="background:#ffffff;border:1px solid #e4e4e7;border-radius:12px;padding:32px;">
      <h2 style="color:#18181b;font-size:20px;margin:0 0 12px 0;">Verify your email</h2>
      <p style="color:#52525b;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
        Use the code below to complete your gym registration.
      </p>
      <div style="font-size:40px;font-weight:bold;letter-spacing:8px;text-align:center;color:#18181b;padding:20px;background:#f4f4f5;border-radius:8px;font-family:'Courier New',monospace;">{{.Code}}</div>
      <p style="color:#92400e;font-size:14px;margin:24px 0 0 0;">
        This code expires in <strong>{{.ExpiryMinutes}} minutes</strong>.
      </p>
      <p style="color:#71717a;font-size:13px;line-height:1.6;margin:16px 0 0 0;">
        If you did not request this code, ignore this email. Never share your
        verification code with anyone.
      </p>
    </div>
    <p style="color:#a1a1aa;font-size:12px;text-align:center;margin:24px 0 0 0;">
      This email was sent to {{.Email}}.
    </p>
  </div>
</body>
</html>
`))

var resetOTPTmpl = template.Must(template.New("reset_otp").Parse(`
<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f5;">
  <div style="max-width:600px;margin:0 auto;padding:32px 20px;">
    <h1 style="font-size:24px;color:#18181b;margin:0 0 8px 0;">{{.AppName}}</h1>
    <div style="background:#ffffff;border:1px solid #e4e4e7;border-radius:12px;padding:32px;">
      <h2 style="color:#18181b;font-size:20px;margin:0 0 12px 0;">Password reset</h2>
      <p style="color:#52525b;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
        You requested to reset the password for your account. Your reset code is:
      </p>
      <div style="font-size:40px;font-weight:bold;letter-spacing:8px;text-align:center;color:#18181b;padding:20px;background:#f4f4f5;border-radius:8px;font-family:'Courier New',monospace;">{{.Code}}</div>
      <p style="color:#92400e;font-size:14px;margin:24px 0 0 0;">
        This code expires in <strong>{{.ExpiryMinutes}} minutes</strong>.
      </p>
      <p style="color:#71717a;font-size:13px;line-height:1.6;margin:16px 0 0 0;">
        If you did not request a password reset, ignore this email or contact
        support if you have concerns.
      </p>
    </div>
  </div>
</body>
</html>
`))

var passwordChangedTmpl = template.Must(template.New("password_changed").Parse(`
<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f5;">
  <div style="max-width:600px;margin:0 auto;padding:32px 20px;">
    <div style="background:#ffffff;border:1px solid #e4e4e7;border-radius:12px;padding:32px;">
      <h2 style="color:#18181b;font-size:20px;margin:0 0 12px 0;">Password changed</h2>
      <p style="color:#52525b;font-size:15px;line-height:1.6;">
        The password for <strong>{{.GymName}}</strong> was changed on {{.When}}.
      </p>
      <p style="color:#52525b;font-size:15px;line-height:1.6;">
        You have been logged out of all other devices. If you did not make this
        change, contact support immediately.
      </p>
    </div>
  </div>
</body>
</html>
`))

var reminderTmpl = template.Must(template.New("expiry_reminder").Parse(`
<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f5;">
  <div style="max-width:600px;margin:0 auto;padding:32px 20px;">
    <div style="background:#ffffff;border:1px solid #e4e4e7;border-radius:12px;padding:32px;">
      <h2 style="color:#18181b;font-size:20px;margin:0 0 12px 0;">Membership expiry alert — {{.GymName}}</h2>
      {{if .ExpiredToday}}
      <h3 style="color:#b91c1c;font-size:16px;margin:24px 0 8px 0;">Expiring today</h3>
      <table style="width:100%;border-collapse:collapse;font-size:14px;color:#3f3f46;">
        {{range .ExpiredToday}}
        <tr>
          <td style="padding:8px;border-bottom:1px solid #e4e4e7;">{{.Name}}</td>
          <td style="padding:8px;border-bottom:1px solid #e4e4e7;">{{.Phone}}</td>
          <td style="padding:8px;border-bottom:1px solid #e4e4e7;">{{.MembershipEnd.Format "02 Jan 2006"}}</td>
        </tr>
        {{end}}
      </table>
      {{end}}
      {{if .ExpiringSoon}}
      <h3 style="color:#b45309;font-size:16px;margin:24px 0 8px 0;">Expiring soon</h3>
      <table style="width:100%;border-collapse:collapse;font-size:14px;color:#3f3f46;">
        {{range .ExpiringSoon}}
        <tr>
          <td style="padding:8px;border-bottom:1px solid #e4e4e7;">{{.Name}}</td>
          <td style="padding:8px;border-bottom:1px solid #e4e4e7;">{{.Phone}}</td>
          <td style="padding:8px;border-bottom:1px solid #e4e4e7;">{{.MembershipEnd.Format "02 Jan 2006"}}</td>
        </tr>
        {{end}}
      </table>
      {{end}}
      <p style="color:#71717a;font-size:13px;margin:24px 0 0 0;">
        Reach out to these members about renewing their memberships.
      </p>
    </div>
  </div>
</body>
</html>
`))

func SignupOTPEmail(appName, email, code string, expiryMinutes int) (subject, body string, err error) {
	var sb strings.Builder
	err = signupOTPTmpl.Execute(&sb, map[string]any{
		"AppName":       appName,
		"Email":         email,
		"Code":          code,
		"ExpiryMinutes": expiryMinutes,
	})
	if err != nil {
		return "", "", fmt.Errorf("render signup otp email: %w", err)
	}
	return fmt.Sprintf("Your %s verification code", appName), sb.String(), nil
}

func PasswordResetOTPEmail(appName, code string, expiryMinutes int) (subject, body string, err error) {
	var sb strings.Builder
	err = resetOTPTmpl.Execute(&sb, map[string]any{
		"AppName":       appName,
		"Code":          code,
		"ExpiryMinutes": expiryMinutes,
	})
	if err != nil {
		return "", "", fmt.Errorf("render reset otp email: %w", err)
	}
	return "Password reset code", sb.String(), nil
}

func PasswordChangedEmail(gymName string, when time.Time) (subject, body string, err error) {
	var sb strings.Builder
	err = passwordChangedTmpl.Execute(&sb, map[string]any{
		"GymName": gymName,
		"When":    when.Format("02 Jan 2006 15:04"),
	})
	if err != nil {
		return "", "", fmt.Errorf("render password changed email: %w", err)
	}
	return "Password changed successfully", sb.String(), nil
}

func ExpiryReminderEmail(gymName string, expiredToday, expiringSoon []ReminderMember) (subject, body string, err error) {
	var sb strings.Builder
	err = reminderTmpl.Execute(&sb, map[string]any{
		"GymName":      gymName,
		"ExpiredToday": expiredToday,
		"ExpiringSoon": expiringSoon,
	})
	if err != nil {
		return "", "", fmt.Errorf("render expiry reminder email: %w", err)
	}
	return fmt.Sprintf("Membership expiry alert - %s", gymName), sb.String(), nil
}

package constant

const EmailPaymentConfirmationTemplate = `
Dear %s,

Great news! Your payment has been successfully processed and your tour tickets are now confirmed.

Order Details:
------------------------------------------
Order Code: %d
%s------------------------------------------
Total Paid: %s

Important Information:
• Each ticket can be cancelled free of charge until the deadline shown above
• Please bring a valid ID for every passenger
• Your tickets are also available in your account

If you have any questions or need assistance, please contact our support team at support@travel-ties.com.

Best regards,
Travel Ties Team

Note: This is an automated message, please do not reply to this email.
`

const EmailTicketLineTemplate = "Tour: %s - Date: %s - Seats: %d - Price: %s - Free cancellation before: %s\n"
